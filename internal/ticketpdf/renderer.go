// Package ticketpdf renders registrations into the printable receipt-format
// ticket: one 80x150 mm page per registration with a Code128 of the ticket
// number, a QR of "area|number|name" and the attendee fields.
package ticketpdf

import (
	"bytes"
	"fmt"
	"image/png"
	"strconv"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/qr"
	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/ArielAmzalak/SenhasGF4/internal/models"
)

const (
	pageWidth  = 80.0
	pageHeight = 150.0

	title  = "Distribuidor de Senhas"
	footer = "Guarde este ticket até o atendimento."

	logoWidth    = 36.0
	barcodeWidth = 50.0
	qrWidth      = 30.0
)

// Renderer turns registrations into PDF bytes. Safe for concurrent use; the
// only shared state is the process-lifetime logo cache.
type Renderer struct {
	logo *logoCache
}

// NewRenderer creates a renderer. logoPath may be empty to use the default
// asset location; a missing asset disables the logo region without error.
func NewRenderer(logoPath string, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{logo: newLogoCache(logoPath, logger)}
}

// Render produces a single-page document for one registration.
func (r *Renderer) Render(reg models.Registration) ([]byte, error) {
	return r.RenderBatch([]models.Registration{reg})
}

// RenderBatch produces one page per registration, in input order.
func (r *Renderer) RenderBatch(regs []models.Registration) ([]byte, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "mm",
		Size:    fpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	pdf.SetAutoPageBreak(true, 1)
	pdf.SetLeftMargin(6)
	pdf.SetRightMargin(6)
	pdf.SetTopMargin(1)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	logoBytes := r.logo.bytes()
	if logoBytes != nil {
		pdf.RegisterImageOptionsReader("logo",
			fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(logoBytes))
	}

	for i, reg := range regs {
		if err := renderPage(pdf, tr, i, reg, logoBytes != nil); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

func renderPage(pdf *fpdf.Fpdf, tr func(string) string, idx int, reg models.Registration, withLogo bool) error {
	number := strconv.Itoa(reg.Number)

	barPNG, err := barcodePNG(number)
	if err != nil {
		return fmt.Errorf("code128 for %q: %w", number, err)
	}
	qrPNG, err := qrPNG(fmt.Sprintf("%s|%s|%s", reg.Area, number, reg.Name))
	if err != nil {
		return fmt.Errorf("qr for ticket %s: %w", number, err)
	}

	pdf.AddPage()

	if withLogo {
		y := pdf.GetY()
		pdf.ImageOptions("logo", (pageWidth-logoWidth)/2, y, logoWidth, 0, false,
			fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		pdf.SetY(y + logoWidth + 2)
	}

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 5, tr(title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 5, tr(reg.Area), "", 1, "C", false, 0, "")
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "B", 40)
	pdf.CellFormat(0, 16, number, "", 1, "C", false, 0, "")
	pdf.Ln(1)

	barName := fmt.Sprintf("bar-%d", idx)
	pdf.RegisterImageOptionsReader(barName,
		fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(barPNG))
	pdf.ImageOptions(barName, pdf.GetX()+10, pdf.GetY(), barcodeWidth, 0, false,
		fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	pdf.Ln(18)

	qrName := fmt.Sprintf("qr-%d", idx)
	pdf.RegisterImageOptionsReader(qrName,
		fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions(qrName, (pageWidth-qrWidth)/2, pdf.GetY()+2, qrWidth, 0, false,
		fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	pdf.Ln(30)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, tr("Nome: "+reg.Name), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr("Telefone: "+reg.Phone), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr("Bairro: "+reg.Neighborhood), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr("Registro: "+reg.RegisteredAt), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "I", 8)
	pdf.MultiCell(0, 4.5, tr(footer), "", "C", false)

	return pdf.Error()
}

// barcodePNG encodes the ticket number as a Code128 strip.
func barcodePNG(content string) ([]byte, error) {
	if content == "" {
		content = "0"
	}
	code, err := code128.Encode(content)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(code, 500, 120)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// qrPNG encodes the pipe-delimited ticket payload as a QR matrix.
func qrPNG(payload string) ([]byte, error) {
	code, err := qr.Encode(payload, qr.M, qr.Auto)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(code, 300, 300)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
