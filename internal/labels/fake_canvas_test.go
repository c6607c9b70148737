package labels_test

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"ledger/internal/labels"
)

type drawCall struct {
	Page  int
	Op    string
	X, Y  float64
	W, H  float64
	Text  string
	Align labels.Align
	Style labels.FontStyle
	Size  float64
}

// recordingCanvas captures draw calls for structural assertions.
type recordingCanvas struct {
	calls    []drawCall
	pages    int
	failOn   string
	bytesErr error
	style    labels.FontStyle
	fontSize float64
}

func (c *recordingCanvas) fail(op string) error {
	if c.failOn == op {
		return errors.New(op + " failed")
	}
	return nil
}

func (c *recordingCanvas) AddPage() error {
	if err := c.fail("page"); err != nil {
		return err
	}
	c.pages++
	return nil
}

func (c *recordingCanvas) SetFont(style labels.FontStyle, size float64) error {
	c.style, c.fontSize = style, size
	return nil
}

func (c *recordingCanvas) Text(x, y float64, text string, align labels.Align) error {
	if err := c.fail("text"); err != nil {
		return err
	}
	c.calls = append(c.calls, drawCall{Page: c.pages, Op: "text", X: x, Y: y, Text: text, Align: align, Style: c.style, Size: c.fontSize})
	return nil
}

func (c *recordingCanvas) Rect(x, y, w, h, _ float64) error {
	c.calls = append(c.calls, drawCall{Page: c.pages, Op: "rect", X: x, Y: y, W: w, H: h})
	return nil
}

func (c *recordingCanvas) Image(_ image.Image, x, y, w, h float64) error {
	c.calls = append(c.calls, drawCall{Page: c.pages, Op: "image", X: x, Y: y, W: w, H: h})
	return nil
}

func (c *recordingCanvas) PageCount() int { return c.pages }

func (c *recordingCanvas) Bytes() ([]byte, error) {
	if c.bytesErr != nil {
		return nil, c.bytesErr
	}
	return []byte(fmt.Sprintf("%%PDF fake %d pages", c.pages)), nil
}

func (c *recordingCanvas) ops(page int) string {
	var ops []string
	for _, call := range c.calls {
		if call.Page == page {
			ops = append(ops, call.Op)
		}
	}
	return strings.Join(ops, ",")
}

func (c *recordingCanvas) texts(page int) []string {
	var out []string
	for _, call := range c.calls {
		if call.Page == page && call.Op == "text" {
			out = append(out, call.Text)
		}
	}
	return out
}
