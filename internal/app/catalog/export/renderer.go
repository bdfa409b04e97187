// Package export lays out customer entries as printable PDF invoices.
//
// A document has three bands: a header (logo, business name, title), a body
// per entry (product, price, state, date, wrapped customer text, QR code of
// the order reference) and a footer (footer note or a default thank-you
// line). Bulk documents repeat the body per entry and re-emit the header on
// every page.
package export

import (
	"bytes"
	"fmt"
	"log"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
)

// ContentType of every rendered document.
const ContentType = "application/pdf"

const (
	defaultBusinessName = "Your Business Name"
	defaultFooter       = "Thank you for your business!"
	currency            = "BDT"
	dateLayout          = "2006-01-02"

	margin       = 20.0
	headerHeight = 60.0
	footerHeight = 40.0
	lineHeight   = 7.0
	qrSize       = 25.0
	// body text stops this far above the bottom edge
	bottomReserve = 50.0
	// a bulk entry starts on a new page when less room than this is left
	bulkEntryReserve = 100.0
)

// Document is a rendered export.
type Document struct {
	Name        string
	ContentType string
	Pages       int
	Data        []byte
}

// Renderer builds PDF documents. It holds no state between calls and is
// safe for concurrent use.
type Renderer struct {
	pageSize string
}

// NewRenderer creates a Renderer producing A4 portrait pages.
func NewRenderer() *Renderer {
	return &Renderer{pageSize: "A4"}
}

// Invoice renders one customer entry of product.
func (r *Renderer) Invoice(cfg *domain.BusinessConfig, product *domain.Product, entry *domain.CustomerEntry) (*Document, error) {
	l := r.newLayout(cfg, "INVOICE", false)
	l.pdf.AddPage()
	l.y = headerHeight + 10

	l.heading("Product Details:")
	l.line("Product Name: " + product.Name())
	if price := product.Price(); !price.IsZero() {
		l.line(fmt.Sprintf("Unit Price: %s %s", price.String(), currency))
	}
	l.stateLine(entry.State())
	l.line("Entry Date: " + entry.CreatedAt().Format(dateLayout))
	l.y += 8

	l.heading("Customer Information:")
	l.qrCode(orderReference(product.ID(), entry.ID()))
	l.wrapped(entry.Data())
	l.y += 15

	l.rule()
	l.total(fmt.Sprintf("Total Amount: %s %s", product.Price().String(), currency))

	return l.finish(InvoiceFileName(product.Name(), entry.ID()))
}

// Bulk renders every record into one document. state is the active filter
// and only affects the title and file name.
func (r *Renderer) Bulk(cfg *domain.BusinessConfig, records []domain.EntryRecord, state *string) (*Document, error) {
	l := r.newLayout(cfg, fmt.Sprintf("BULK PRINT - %s Customers", stateLabel(state)), true)
	l.pdf.AddPage()
	l.y = headerHeight + 10

	for i, rec := range records {
		if l.y+bulkEntryReserve > l.pageH {
			l.newPage()
		}

		l.heading(fmt.Sprintf("Entry %d - Product: %s", i+1, rec.ProductName))
		l.qrCode(orderReference(rec.ProductID, rec.Entry.ID()))
		if rec.ProductPrice != nil && !rec.ProductPrice.IsZero() {
			l.line(fmt.Sprintf("Unit Price: %s %s", rec.ProductPrice.String(), currency))
		}
		l.stateLine(rec.Entry.State())
		l.line("Entry Date: " + rec.Entry.CreatedAt().Format(dateLayout))
		l.wrapped(rec.Entry.Data())
		l.y += 10
		l.rule()
	}

	return l.finish(BulkFileName(state))
}

func orderReference(productID, entryID int64) string {
	return strconv.FormatInt(productID, 10) + "-" + strconv.FormatInt(entryID, 10)
}

func (r *Renderer) newLayout(cfg *domain.BusinessConfig, title string, headerOnEveryPage bool) *layout {
	pdf := fpdf.New("P", "mm", r.pageSize, "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("ordertally", true)
	pdf.SetTitle(title, true)

	l := &layout{
		pdf:          pdf,
		tr:           pdf.UnicodeTranslatorFromDescriptor(""),
		cfg:          cfg,
		title:        title,
		images:       make(map[string]bool),
		repeatHeader: headerOnEveryPage,
	}
	l.pageW, l.pageH = pdf.GetPageSize()
	l.logo = l.registerLogo()

	pdf.SetHeaderFunc(func() {
		if l.repeatHeader || pdf.PageNo() == 1 {
			l.header()
		}
	})
	pdf.SetFooterFunc(l.footer)
	return l
}

func (l *layout) finish(name string) (*Document, error) {
	var buf bytes.Buffer
	pages := l.pdf.PageCount()
	if err := l.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}
	return &Document{
		Name:        name,
		ContentType: ContentType,
		Pages:       pages,
		Data:        buf.Bytes(),
	}, nil
}

// logf is swapped in tests.
var logf = log.Printf
