// Package renderer produces the stored PDF document for an invoice using a
// single fixed template. Layout is not configurable; every invoice of every
// user renders through the same code path.
package renderer

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/invmate/invmate_app/internal/apperrors"
	portssvc "github.com/invmate/invmate_app/internal/core/ports/services"
	"github.com/invmate/invmate_app/internal/utils/billing"
	"github.com/jung-kurt/gofpdf"
)

const (
	pageMargin  = 15.0
	logoWidth   = 30.0
	tableWidth  = 180.0
	rowHeight   = 8.0
	dateLayout  = "02/01/2006"
	totalsWidth = 70.0
)

// accent is the highlight colour used for the table header and balance due row.
var accent = [3]int{230, 126, 34}

// banding is the background colour of even-numbered item rows.
var banding = [3]int{240, 240, 240}

type PDFRenderer struct{}

func NewPDFRenderer() portssvc.InvoiceRenderer {
	return &PDFRenderer{}
}

// Ensure PDFRenderer implements portssvc.InvoiceRenderer
var _ portssvc.InvoiceRenderer = (*PDFRenderer)(nil)

// Render produces the invoice PDF. It does no arithmetic beyond per-line
// display totals; all aggregates arrive pre-computed in input.Totals.
func (r *PDFRenderer) Render(input portssvc.RenderInput) ([]byte, error) {
	if err := validateRenderInput(input); err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.AddPage()

	r.drawHeader(pdf, input)
	r.drawParties(pdf, input)
	r.drawItemTable(pdf, input)
	r.drawTotals(pdf, input)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice %s: %w", input.DisplayID, err)
	}
	return buf.Bytes(), nil
}

// validateRenderInput rejects inputs that would produce a document with a
// missing party. Stored records can lose these fields through partial
// updates, so the check must happen here and not only at request binding.
func validateRenderInput(input portssvc.RenderInput) error {
	switch {
	case len(input.Items) == 0:
		return fmt.Errorf("%w: cannot render invoice %s with no items", apperrors.ErrValidation, input.DisplayID)
	case input.Issuer.CompanyName == "":
		return fmt.Errorf("%w: cannot render invoice %s without an issuer company name", apperrors.ErrValidation, input.DisplayID)
	case input.Issuer.Address == "":
		return fmt.Errorf("%w: cannot render invoice %s without an issuer address", apperrors.ErrValidation, input.DisplayID)
	case input.Client.CompanyName == "":
		return fmt.Errorf("%w: cannot render invoice %s without a client company name", apperrors.ErrValidation, input.DisplayID)
	case input.Client.Address == "":
		return fmt.Errorf("%w: cannot render invoice %s without a client address", apperrors.ErrValidation, input.DisplayID)
	}
	return nil
}

// drawHeader renders the issuer block with optional logo on the left and the
// INVOICE title with the boxed number/date panel on the right.
func (r *PDFRenderer) drawHeader(pdf *gofpdf.Fpdf, input portssvc.RenderInput) {
	top := pdf.GetY()

	if len(input.Issuer.Picture) > 0 {
		if name, ok := registerLogo(pdf, input.Issuer.Picture); ok {
			pdf.ImageOptions(name, pageMargin, top, logoWidth, 0, false, gofpdf.ImageOptions{}, 0, "")
			pdf.SetY(top + logoWidth*0.6)
		}
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(100, 6, input.Issuer.CompanyName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range issuerLines(input) {
		pdf.CellFormat(100, 4.5, line, "", 1, "L", false, 0, "")
	}

	// Title and the boxed number/date panel on the right edge.
	pdf.SetXY(-pageMargin-totalsWidth, top)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(totalsWidth, 10, "INVOICE", "", 2, "R", false, 0, "")

	pdf.SetFillColor(banding[0], banding[1], banding[2])
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetX(-pageMargin - totalsWidth)
	pdf.CellFormat(30, rowHeight, "Invoice No.", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, rowHeight, input.DisplayID, "1", 1, "R", false, 0, "")
	pdf.SetX(-pageMargin - totalsWidth)
	pdf.CellFormat(30, rowHeight, "Date", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, rowHeight, input.CreationDate.Format(dateLayout), "1", 1, "R", false, 0, "")
	pdf.SetX(-pageMargin - totalsWidth)
	pdf.CellFormat(30, rowHeight, "Due Date", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, rowHeight, input.DueDate.Format(dateLayout), "1", 1, "R", false, 0, "")

	pdf.Ln(12)
}

// drawParties renders the BILL TO and SHIP TO blocks. Both come from the same
// client record; there is no separate shipping address.
func (r *PDFRenderer) drawParties(pdf *gofpdf.Fpdf, input portssvc.RenderInput) {
	lines := clientLines(input)
	startY := pdf.GetY()

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(accent[0], accent[1], accent[2])
	pdf.CellFormat(90, 6, "BILL TO", "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range lines {
		pdf.CellFormat(90, 4.5, line, "", 1, "L", false, 0, "")
	}

	pdf.SetXY(pageMargin+90, startY)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(accent[0], accent[1], accent[2])
	pdf.CellFormat(90, 6, "SHIP TO", "", 2, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range lines {
		pdf.SetX(pageMargin + 90)
		pdf.CellFormat(90, 4.5, line, "", 1, "L", false, 0, "")
	}

	pdf.Ln(10)
}

// drawItemTable renders the item table with a filled header row and grey
// banding on even-numbered data rows.
func (r *PDFRenderer) drawItemTable(pdf *gofpdf.Fpdf, input portssvc.RenderInput) {
	colWidths := []float64{70, 20, 30, 25, 35}
	headers := []string{"Description", "Qty", "Unit Price", "Tax", "Total"}
	aligns := []string{"L", "C", "R", "R", "R"}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(accent[0], accent[1], accent[2])
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], rowHeight, h, "", 0, aligns[i], true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(banding[0], banding[1], banding[2])
	for i, item := range input.Items {
		fill := i%2 == 0
		cells := []string{
			item.Name,
			fmt.Sprintf("%d", item.Quantity),
			item.Price.StringFixed(2),
			item.TaxRate.StringFixed(2) + " %",
			billing.LineTotal(item).StringFixed(2),
		}
		for j, c := range cells {
			pdf.CellFormat(colWidths[j], rowHeight, c, "", 0, aligns[j], fill, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
}

// drawTotals renders the totals panel with the highlighted balance due row.
// Balance due always equals the grand total; partial payments are not tracked.
func (r *PDFRenderer) drawTotals(pdf *gofpdf.Fpdf, input portssvc.RenderInput) {
	currency := string(input.Currency)
	amount := func(v string) string { return v + " " + currency }

	row := func(label, value string) {
		pdf.SetX(-pageMargin - totalsWidth)
		pdf.CellFormat(30, rowHeight, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(40, rowHeight, value, "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "", 10)
	row("Subtotal", amount(input.Totals.SubtotalDisplay()))
	row("Tax", amount(input.Totals.TaxTotalDisplay()))
	row("Total", amount(input.Totals.GrandTotalDisplay()))
	if input.FiscalStamp {
		pdf.SetFont("Helvetica", "I", 9)
		row("Fiscal stamp", "applied")
		pdf.SetFont("Helvetica", "", 10)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(accent[0], accent[1], accent[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.SetX(-pageMargin - totalsWidth)
	pdf.CellFormat(30, rowHeight+2, "Balance Due", "", 0, "L", true, 0, "")
	pdf.CellFormat(40, rowHeight+2, amount(input.Totals.GrandTotalDisplay()), "", 1, "R", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// registerLogo registers the issuer's logo blob with the document if it is a
// supported image format. Unsupported blobs are skipped, not fatal.
func registerLogo(pdf *gofpdf.Fpdf, picture []byte) (string, bool) {
	var imageType string
	switch http.DetectContentType(picture) {
	case "image/png":
		imageType = "PNG"
	case "image/jpeg":
		imageType = "JPG"
	default:
		return "", false
	}
	opts := gofpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptionsReader("issuer-logo", opts, bytes.NewReader(picture))
	if pdf.Err() {
		pdf.ClearError()
		return "", false
	}
	return "issuer-logo", true
}

func issuerLines(input portssvc.RenderInput) []string {
	lines := []string{input.Issuer.Address}
	if loc := joinNonEmpty(input.Issuer.ZipCode, input.Issuer.Country); loc != "" {
		lines = append(lines, loc)
	}
	if input.Issuer.Phone != "" {
		lines = append(lines, input.Issuer.Phone)
	}
	if input.Issuer.Email != "" {
		lines = append(lines, input.Issuer.Email)
	}
	if input.Issuer.FiscalCode != "" {
		lines = append(lines, "Fiscal code: "+input.Issuer.FiscalCode)
	}
	return lines
}

func clientLines(input portssvc.RenderInput) []string {
	lines := []string{input.Client.CompanyName, input.Client.Address}
	if loc := joinNonEmpty(input.Client.ZipCode, input.Client.Country); loc != "" {
		lines = append(lines, loc)
	}
	if input.Client.Phone != "" {
		lines = append(lines, input.Client.Phone)
	}
	if input.Client.Email != "" {
		lines = append(lines, input.Client.Email)
	}
	return lines
}

func joinNonEmpty(parts ...string) string {
	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ", ")
}
