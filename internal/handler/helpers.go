package handler

import (
	"errors"
	"net/http"

	"saaspdv/internal/apierror"
	"saaspdv/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var validate = validator.New()

// bindAndValidate binds the JSON body and runs go-playground/validator tags.
// Returns false after writing the error response; the caller must return
// without writing another one.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// pathID parses the :id path parameter; on failure it writes a 400 and
// returns false.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps the service error taxonomy onto HTTP statuses:
// credentials 401, authorization 403, conflicts 409, not found 404, sale
// rule violations 400, anything else 500 with a sanitized message.
func writeError(c *gin.Context, err error) {
	var denied *service.DeniedError
	var conflict *service.ConflictError
	var productNotFound *service.ProductNotFoundError
	var insufficientStock *service.InsufficientStockError

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
	case errors.As(err, &denied):
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))
	case errors.Is(err, service.ErrEmailExists):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.As(err, &productNotFound), errors.As(err, &insufficientStock):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.Is(err, service.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, apierror.New("not found"))
	default:
		// The raw error goes to the log via the error middleware, never to
		// the client.
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("internal server error"))
	}
}
