package barcode

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Code128Options fixes how linear barcodes are rendered. Sizes are pixels.
type Code128Options struct {
	ModuleWidth int
	BarHeight   int
	Margin      int
	FontSize    float64
	ShowText    bool
}

// DefaultCode128Options returns the label barcode settings.
func DefaultCode128Options() Code128Options {
	return Code128Options{
		ModuleWidth: 2,
		BarHeight:   50,
		Margin:      5,
		FontSize:    12,
		ShowText:    true,
	}
}

// Code128 renders Code 128 barcodes with the human-readable payload beneath the bars.
type Code128 struct {
	opts Code128Options
	font *opentype.Font
}

// NewCode128 validates opts and loads the caption font.
func NewCode128(opts Code128Options) (*Code128, error) {
	if opts.ModuleWidth <= 0 || opts.BarHeight <= 0 || opts.Margin < 0 {
		return nil, fmt.Errorf("invalid code128 options: module=%d height=%d margin=%d", opts.ModuleWidth, opts.BarHeight, opts.Margin)
	}
	if opts.ShowText && opts.FontSize <= 0 {
		return nil, fmt.Errorf("invalid code128 font size %.1f", opts.FontSize)
	}
	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse caption font: %w", err)
	}
	return &Code128{opts: opts, font: parsed}, nil
}

// Options reports the rendering settings.
func (c *Code128) Options() Code128Options {
	return c.opts
}

// Synthesize renders payload. Payloads Code 128 cannot carry fail with *EncodingError.
func (c *Code128) Synthesize(ctx context.Context, payload string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if payload == "" {
		return nil, &EncodingError{Symbology: SymbologyCode128, Payload: payload, Err: errors.New("empty payload")}
	}
	code, err := code128.Encode(payload)
	if err != nil {
		return nil, &EncodingError{Symbology: SymbologyCode128, Payload: payload, Err: err}
	}
	barsWidth := code.Bounds().Dx() * c.opts.ModuleWidth
	bars, err := barcode.Scale(code, barsWidth, c.opts.BarHeight)
	if err != nil {
		return nil, &EncodingError{Symbology: SymbologyCode128, Payload: payload, Err: err}
	}
	if !c.opts.ShowText {
		canvas := imaging.New(barsWidth+2*c.opts.Margin, c.opts.BarHeight+2*c.opts.Margin, color.White)
		return imaging.Paste(canvas, bars, image.Pt(c.opts.Margin, c.opts.Margin)), nil
	}

	// opentype faces keep per-face buffers, so each call gets its own.
	face, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    c.opts.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, &EncodingError{Symbology: SymbologyCode128, Payload: payload, Err: err}
	}
	defer face.Close()

	metrics := face.Metrics()
	textWidth := font.MeasureString(face, payload).Ceil()
	textHeight := (metrics.Ascent + metrics.Descent).Ceil()

	width := max(barsWidth, textWidth) + 2*c.opts.Margin
	height := c.opts.Margin + c.opts.BarHeight + c.opts.Margin/2 + textHeight + c.opts.Margin
	canvas := imaging.New(width, height, color.White)
	canvas = imaging.Paste(canvas, bars, image.Pt((width-barsWidth)/2, c.opts.Margin))

	drawer := &font.Drawer{Dst: canvas, Src: image.Black, Face: face}
	baseline := c.opts.Margin + c.opts.BarHeight + c.opts.Margin/2 + metrics.Ascent.Ceil()
	drawer.Dot = fixed.P((width-textWidth)/2, baseline)
	drawer.DrawString(payload)
	return canvas, nil
}
