package export

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/skip2/go-qrcode"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
)

const logoImageName = "business-logo"

// layout tracks the vertical cursor of one document being built.
type layout struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	cfg    *domain.BusinessConfig
	title  string
	logo   string
	images map[string]bool

	// repeatHeader re-emits the header band on continuation pages.
	repeatHeader bool

	pageW, pageH float64
	y            float64
}

func (l *layout) header() {
	l.pdf.SetFillColor(237, 242, 247)
	l.pdf.Rect(0, 0, l.pageW, headerHeight, "F")

	if l.logo != "" {
		l.pdf.ImageOptions(l.logo, margin, 15, 30, 30, false, fpdf.ImageOptions{}, 0, "")
	}

	name := l.cfg.Name()
	if name == "" {
		name = defaultBusinessName
	}
	l.pdf.SetTextColor(45, 55, 72)
	l.pdf.SetFont("Helvetica", "B", 24)
	l.rightText(25, name)
	l.pdf.SetFont("Helvetica", "", 18)
	l.rightText(40, l.title)
}

func (l *layout) footer() {
	top := l.pageH - footerHeight
	l.pdf.SetFillColor(237, 242, 247)
	l.pdf.Rect(0, top, l.pageW, footerHeight, "F")

	l.pdf.SetFont("Helvetica", "I", 10)
	l.pdf.SetTextColor(113, 128, 150)

	note := l.cfg.FooterNote()
	if note == "" {
		l.pdf.SetXY(margin, l.pageH-25-2.5)
		l.pdf.CellFormat(l.pageW-2*margin, 5, l.tr(defaultFooter), "", 0, "C", false, 0, "")
	} else {
		y := l.pageH - 30 - 2.5
		for _, line := range l.pdf.SplitText(note, l.pageW-2*margin) {
			l.pdf.SetXY(margin, y)
			l.pdf.CellFormat(l.pageW-2*margin, 5, l.tr(line), "", 0, "C", false, 0, "")
			y += 5
		}
	}
	l.pdf.SetTextColor(45, 55, 72)
}

func (l *layout) newPage() {
	l.pdf.AddPage()
	l.y = margin
	if l.repeatHeader {
		l.y += headerHeight
	}
}

// breakIfFull starts a new page when the cursor is past the printable area.
func (l *layout) breakIfFull() {
	if l.y > l.pageH-bottomReserve {
		l.newPage()
	}
}

func (l *layout) heading(text string) {
	l.breakIfFull()
	l.pdf.SetFont("Helvetica", "B", 14)
	l.text(margin, text)
	l.y += 10
}

func (l *layout) line(text string) {
	l.breakIfFull()
	l.pdf.SetFont("Helvetica", "", 12)
	l.text(margin, text)
	l.y += lineHeight
}

func (l *layout) stateLine(state string) {
	l.breakIfFull()
	l.pdf.SetFont("Helvetica", "", 12)
	l.text(margin, "State: ")
	x := margin + l.pdf.GetStringWidth("State: ")
	r, g, b := hexToRGB(l.cfg.StateColor(state))
	l.pdf.SetTextColor(r, g, b)
	l.pdf.SetFont("Helvetica", "B", 12)
	l.text(x, state)
	l.pdf.SetTextColor(45, 55, 72)
	l.y += lineHeight
}

// wrapped writes text word-wrapped to the left of the QR code column,
// breaking pages as needed.
func (l *layout) wrapped(text string) {
	l.pdf.SetFont("Helvetica", "", 12)
	for _, line := range l.pdf.SplitText(text, l.pageW-2*margin-qrSize-5) {
		l.breakIfFull()
		l.pdf.SetFont("Helvetica", "", 12)
		l.text(margin, line)
		l.y += lineHeight
	}
}

func (l *layout) rule() {
	l.pdf.SetDrawColor(200, 200, 200)
	l.pdf.Line(margin, l.y, l.pageW-margin, l.y)
	l.y += 10
}

func (l *layout) total(text string) {
	l.breakIfFull()
	l.pdf.SetFont("Helvetica", "B", 16)
	l.rightText(l.y, text)
	l.y += 20
}

// qrCode prints a QR code of ref at the left edge, level with the cursor.
// Failures are logged and the layout continues without the code.
func (l *layout) qrCode(ref string) {
	name := "qr-" + ref
	if !l.images[name] {
		png, err := qrcode.Encode(ref, qrcode.Medium, 256)
		if err != nil {
			logf("export: qr code for %s: %v", ref, err)
			return
		}
		l.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
		if err := l.pdf.Error(); err != nil {
			logf("export: qr code for %s: %v", ref, err)
			l.pdf.ClearError()
			return
		}
		l.images[name] = true
	}
	l.pdf.ImageOptions(name, l.pageW-margin-qrSize, l.y-5, qrSize, qrSize, false, fpdf.ImageOptions{}, 0, "")
}

// registerLogo decodes the business logo once per document. A logo that
// cannot be decoded is logged and left out.
func (l *layout) registerLogo() string {
	logo := l.cfg.Logo()
	if logo == nil {
		return ""
	}

	imageType := imageTypeFor(logo.MIMEType())
	if imageType == "" {
		logf("export: unsupported logo type %q, skipping logo", logo.MIMEType())
		return ""
	}
	raw, err := logo.Bytes()
	if err != nil {
		logf("export: could not decode logo: %v", err)
		return ""
	}

	l.pdf.RegisterImageOptionsReader(logoImageName, fpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(raw))
	if err := l.pdf.Error(); err != nil {
		logf("export: could not add logo to PDF: %v", err)
		l.pdf.ClearError()
		return ""
	}
	return logoImageName
}

func (l *layout) text(x float64, s string) {
	l.pdf.Text(x, l.y, l.tr(s))
}

func (l *layout) rightText(y float64, s string) {
	s = l.tr(s)
	l.pdf.Text(l.pageW-margin-l.pdf.GetStringWidth(s), y, s)
}

func imageTypeFor(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/png":
		return "PNG"
	case "image/jpeg", "image/jpg":
		return "JPG"
	case "image/gif":
		return "GIF"
	}
	return ""
}

func hexToRGB(color string) (int, int, int) {
	v, err := strconv.ParseUint(strings.TrimPrefix(color, "#"), 16, 32)
	if err != nil || len(color) != 7 {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF)
}
