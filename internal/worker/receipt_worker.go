package worker

import (
	"context"
	"encoding/json"
	"errors"

	"saaspdv/internal/infra"
	"saaspdv/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ReceiptWorker delivers receipt PDFs to the sale's customer by email.
// Sales without a customer, or with a customer that has no email on file,
// are skipped silently.
type ReceiptWorker struct {
	sales     repository.SaleRepository
	products  repository.ProductRepository
	customers repository.CustomerRepository
	renderer  *infra.ReceiptPDF
	mailer    *infra.Mailer
}

func NewReceiptWorker(
	sales repository.SaleRepository,
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	renderer *infra.ReceiptPDF,
	mailer *infra.Mailer,
) *ReceiptWorker {
	return &ReceiptWorker{
		sales:     sales,
		products:  products,
		customers: customers,
		renderer:  renderer,
		mailer:    mailer,
	}
}

func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return
	}

	sale, err := w.sales.FindByIDForTenant(ctx, payload.SaleID, payload.TenantID)
	if err != nil {
		log.Error().Err(err).Str("sale_id", payload.SaleID.String()).
			Msg("receipt_worker: sale lookup failed")
		return
	}
	if sale.CustomerID == nil {
		return
	}

	customer, err := w.customers.FindByIDForTenant(ctx, *sale.CustomerID, payload.TenantID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error().Err(err).Msg("receipt_worker: customer lookup failed")
		}
		return
	}
	if customer.Email == nil || *customer.Email == "" {
		return
	}

	names := make(map[uuid.UUID]string, len(sale.Items))
	for _, item := range sale.Items {
		product, err := w.products.FindByIDForTenant(ctx, item.ProductID, payload.TenantID)
		if err != nil {
			continue
		}
		names[item.ProductID] = product.Name
	}

	pdfPath, err := w.renderer.RenderToFile(sale, names)
	if err != nil {
		log.Error().Err(err).Msg("receipt_worker: pdf render failed")
		return
	}

	subject := "Your purchase receipt"
	body := "Thank you for your purchase. Your receipt is attached."
	if err := w.mailer.SendReceipt(*customer.Email, subject, body, pdfPath); err != nil {
		log.Error().Err(err).Str("to", *customer.Email).
			Msg("receipt_worker: send failed")
		return
	}
	log.Info().Str("sale_id", sale.ID.String()).Str("to", *customer.Email).
		Msg("receipt_worker: receipt sent")
}

var _ Handler = (*ReceiptWorker)(nil)
