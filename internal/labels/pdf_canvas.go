package labels

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"unicode"

	"github.com/signintech/gopdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

const pdfFontFamily = "go"

// PDFCanvas draws label pages into a PDF document with embedded Go fonts.
type PDFCanvas struct {
	pdf    *gopdf.GoPdf
	glyphs *sfnt.Font
	buf    sfnt.Buffer
	pages  int
}

// NewPDFCanvas starts an empty document whose pages have the geometry's size.
func NewPDFCanvas(g Geometry) (*PDFCanvas, error) {
	if g.PageWidth <= 0 || g.PageHeight <= 0 {
		return nil, fmt.Errorf("invalid page size %.1fx%.1f", g.PageWidth, g.PageHeight)
	}
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{
		Unit:     gopdf.UnitMM,
		PageSize: gopdf.Rect{W: g.PageWidth, H: g.PageHeight},
	})
	pdf.SetCompressLevel(9)
	if err := pdf.AddTTFFontData(pdfFontFamily, goregular.TTF); err != nil {
		return nil, fmt.Errorf("embed regular font: %w", err)
	}
	if err := pdf.AddTTFFontDataWithOption(pdfFontFamily, gobold.TTF, gopdf.TtfOption{Style: gopdf.Bold}); err != nil {
		return nil, fmt.Errorf("embed bold font: %w", err)
	}
	glyphs, err := sfnt.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse glyph table: %w", err)
	}
	return &PDFCanvas{pdf: pdf, glyphs: glyphs}, nil
}

func (p *PDFCanvas) AddPage() error {
	p.pdf.AddPage()
	p.pages++
	return nil
}

func (p *PDFCanvas) SetFont(style FontStyle, size float64) error {
	name := ""
	if style == FontBold {
		name = "B"
	}
	return p.pdf.SetFont(pdfFontFamily, name, size)
}

func (p *PDFCanvas) Text(x, y float64, text string, align Align) error {
	if p.pages == 0 {
		return errors.New("text drawn before first page")
	}
	text = p.printable(text)
	if text == "" {
		return nil
	}
	if align == AlignCenter {
		width, err := p.pdf.MeasureTextWidth(text)
		if err != nil {
			return err
		}
		x -= width / 2
	}
	p.pdf.SetXY(x, y)
	return p.pdf.Text(text)
}

func (p *PDFCanvas) Rect(x, y, w, h, stroke float64) error {
	if p.pages == 0 {
		return errors.New("rectangle drawn before first page")
	}
	p.pdf.SetStrokeColor(0, 0, 0)
	p.pdf.SetLineWidth(stroke)
	p.pdf.RectFromUpperLeft(x, y, w, h)
	return nil
}

func (p *PDFCanvas) Image(img image.Image, x, y, w, h float64) error {
	if p.pages == 0 {
		return errors.New("image drawn before first page")
	}
	return p.pdf.ImageFrom(img, x, y, &gopdf.Rect{W: w, H: h})
}

func (p *PDFCanvas) PageCount() int {
	return p.pages
}

func (p *PDFCanvas) Bytes() ([]byte, error) {
	return p.pdf.GetBytesPdfReturnErr()
}

// printable replaces runes the embedded font cannot render with '?' and
// folds control characters to spaces.
func (p *PDFCanvas) printable(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		idx, err := p.glyphs.GlyphIndex(&p.buf, r)
		if err != nil || idx == 0 {
			return '?'
		}
		return r
	}, text)
}
