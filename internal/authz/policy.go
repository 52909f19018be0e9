// Package authz implements the authorization policy: a state-free decision
// function over (claims, action, target). It performs no I/O; ownership
// facts that require a store read are looked up by the calling service and
// passed in via Target. When that lookup fails the caller must deny without
// consulting the policy (fail-closed).
package authz

import (
	"github.com/google/uuid"

	"saaspdv/internal/auth"
	"saaspdv/internal/model"
)

// Action identifies the operation being authorized.
type Action string

const (
	ActionPlanManage     Action = "plan:manage"
	ActionTenantCreate   Action = "tenant:create"
	ActionTenantList     Action = "tenant:list"
	ActionTenantUpdate   Action = "tenant:update"
	ActionTenantDelete   Action = "tenant:delete"
	ActionResellerManage Action = "reseller:manage"
	ActionUserManage     Action = "user:manage"
	ActionUserDelete     Action = "user:delete"
	// ActionStoreAccess covers product/customer/sale/metrics operations on the
	// caller's own tenant.
	ActionStoreAccess Action = "store:access"
)

// DenyReason explains a negative decision; it maps 1:1 to the error taxonomy.
type DenyReason string

const (
	ReasonForbidden        DenyReason = "forbidden"
	ReasonNotOwner         DenyReason = "not_owner"
	ReasonNoTenant         DenyReason = "no_tenant"
	ReasonCannotDeleteSelf DenyReason = "cannot_delete_self"
)

// Scope is the row-filtering predicate an Allow decision attaches to the data
// operation. Exactly one of All / TenantID / ResellerID is meaningful.
type Scope struct {
	// All grants unrestricted access (admin).
	All bool
	// TenantID restricts to rows where tenant_id = *TenantID.
	TenantID *uuid.UUID
	// ResellerID restricts to tenants where reseller_id = *ResellerID.
	// On tenant creation it is the owner forced onto the new row.
	ResellerID *uuid.UUID
}

// Target carries the facts about the resource being acted on.
type Target struct {
	// TenantResellerID is the reseller owning the target tenant, when the
	// caller looked it up; nil means unowned or unknown (both deny resellers).
	TenantResellerID *uuid.UUID
	// UserID is the target user for user:delete.
	UserID *uuid.UUID
}

// Decision is the outcome of Authorize.
type Decision struct {
	Allowed bool
	Reason  DenyReason
	Scope   Scope
}

func allow(s Scope) Decision     { return Decision{Allowed: true, Scope: s} }
func deny(r DenyReason) Decision { return Decision{Reason: r} }

// Authorize applies the role/tenancy rule table. It is re-evaluated per
// request; there is no cached session state.
func Authorize(claims *auth.Claims, action Action, target Target) Decision {
	sub, err := claims.UserID()
	if err != nil {
		return deny(ReasonForbidden)
	}

	// Self-deletion is blocked regardless of role.
	if action == ActionUserDelete && target.UserID != nil && *target.UserID == sub {
		return deny(ReasonCannotDeleteSelf)
	}

	// Store-scoped operations require a tenant claim for every role.
	if action == ActionStoreAccess {
		if claims.TenantID == nil {
			return deny(ReasonNoTenant)
		}
		return allow(Scope{TenantID: claims.TenantID})
	}

	switch claims.Role {
	case model.RoleAdmin, model.RoleSuperAdmin:
		return allow(Scope{All: true})

	case model.RoleReseller:
		switch action {
		case ActionTenantCreate:
			// The new tenant's owner is forced to the caller, whatever the
			// request payload says.
			return allow(Scope{ResellerID: &sub})
		case ActionTenantList:
			return allow(Scope{ResellerID: &sub})
		case ActionTenantUpdate, ActionTenantDelete:
			if target.TenantResellerID == nil || *target.TenantResellerID != sub {
				return deny(ReasonNotOwner)
			}
			return allow(Scope{ResellerID: &sub})
		default:
			// Reseller-management, user-management and plan ops are admin-only.
			return deny(ReasonForbidden)
		}

	default:
		return deny(ReasonForbidden)
	}
}
