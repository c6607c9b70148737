package labels

import "image"

// Align selects how Text positions a string relative to its x coordinate.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// FontStyle selects the face used by subsequent Text calls.
type FontStyle int

const (
	FontRegular FontStyle = iota
	FontBold
)

// Canvas is the drawing surface pages are laid out on. Coordinates are
// millimetres from the top-left corner of the current page; Text's y is the
// baseline. Implementations are not safe for concurrent use.
type Canvas interface {
	AddPage() error
	SetFont(style FontStyle, size float64) error
	Text(x, y float64, text string, align Align) error
	Rect(x, y, w, h, stroke float64) error
	Image(img image.Image, x, y, w, h float64) error
	PageCount() int
	Bytes() ([]byte, error)
}
