package infra

// Receipt PDFs are rendered with go-pdf/fpdf on a custom 74x105mm page,
// close to thermal receipt paper.

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"saaspdv/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
)

// ReceiptPDF renders committed sales into receipt-style PDF documents.
type ReceiptPDF struct {
	storagePath string
}

func NewReceiptPDF(storagePath string) *ReceiptPDF {
	return &ReceiptPDF{storagePath: storagePath}
}

func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// Render produces the PDF bytes for a sale. productNames maps product ids to
// display names; unknown ids render with a placeholder.
func (r *ReceiptPDF) Render(sale *model.Sale, productNames map[uuid.UUID]string) ([]byte, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "Sales Receipt", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, sale.ID.String(), "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 4, sale.CreatedAt.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range sale.Items {
		name := productNames[item.ProductID]
		if name == "" {
			name = "(removed product)"
		}
		if len(name) > 22 {
			name = name[:19] + "..."
		}
		pdf.CellFormat(col1, 5, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, formatCents(item.Subtotal), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, formatCents(sale.TotalAmount), "", 1, "R", false, 0, "")

	pdf.Ln(1)
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(col1+col2, 4, "Payment:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 4, sale.PaymentMethod, "", 1, "R", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Thank you for your purchase!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderToFile writes the receipt under the storage path and returns the
// file's absolute path. Used by the async delivery worker, which attaches
// files rather than byte slices.
func (r *ReceiptPDF) RenderToFile(sale *model.Sale, productNames map[uuid.UUID]string) (string, error) {
	data, err := r.Render(sale, productNames)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(r.storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	path := filepath.Join(r.storagePath, fmt.Sprintf("receipt_%s.pdf", sale.ID))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return path, nil
}
