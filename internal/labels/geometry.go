package labels

import "ledger/internal/config"

// Geometry holds every layout constant of a label page in millimetres, except
// font sizes which are points. Offsets are measured from the page margin.
type Geometry struct {
	PageWidth    float64
	PageHeight   float64
	Margin       float64
	LabelHeight  float64
	BorderStroke float64

	TitleOffset    float64
	FirstRowOffset float64
	LinePitch      float64
	LabelColumn    float64
	ValueColumn    float64

	BodyFontSize    float64
	CaptionFontSize float64

	BarcodeWidth  float64
	BarcodeHeight float64
	BarcodeGap    float64
	BarcodeLift   float64
	QRSize        float64
	ImageGap      float64
}

// DefaultGeometry returns the 80x200 mm receipt layout.
func DefaultGeometry() Geometry {
	return Geometry{
		PageWidth:    80,
		PageHeight:   200,
		Margin:       5,
		LabelHeight:  190,
		BorderStroke: 0.5,

		TitleOffset:    8,
		FirstRowOffset: 15,
		LinePitch:      5,
		LabelColumn:    2,
		ValueColumn:    30,

		BodyFontSize:    8,
		CaptionFontSize: 7,

		BarcodeWidth:  60,
		BarcodeHeight: 15,
		BarcodeGap:    5,
		BarcodeLift:   3,
		QRSize:        30,
		ImageGap:      5,
	}
}

// GeometryFromConfig applies the configured page size and margin to the
// default layout. The border keeps the margin on every side.
func GeometryFromConfig(render config.Render) Geometry {
	g := DefaultGeometry()
	g.PageWidth = render.PageWidthMM
	g.PageHeight = render.PageHeightMM
	g.Margin = render.MarginMM
	g.LabelHeight = render.PageHeightMM - 2*render.MarginMM
	return g
}

// LabelWidth is the width of the bordered label rectangle.
func (g Geometry) LabelWidth() float64 {
	return g.PageWidth - 2*g.Margin
}

// CenterX is the horizontal centre of the page.
func (g Geometry) CenterX() float64 {
	return g.PageWidth / 2
}
