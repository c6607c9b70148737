package barcode_test

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"

	"ledger/internal/barcode"
)

func TestCode128Synthesize(t *testing.T) {
	code, err := barcode.NewCode128(barcode.DefaultCode128Options())
	if err != nil {
		t.Fatalf("NewCode128: %v", err)
	}
	img, err := code.Synthesize(context.Background(), "6820253043001")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	opts := code.Options()
	bounds := img.Bounds()
	if bounds.Dy() <= opts.BarHeight+2*opts.Margin {
		t.Fatalf("expected room for caption below the bars, height=%d", bounds.Dy())
	}
	if bounds.Dx() <= 2*opts.Margin {
		t.Fatalf("unexpected width %d", bounds.Dx())
	}
	if !hasDarkPixel(img, bounds.Min.Y+opts.Margin+opts.BarHeight/2) {
		t.Fatal("expected bars in the middle of the bar area")
	}
}

func TestCode128WithoutText(t *testing.T) {
	opts := barcode.DefaultCode128Options()
	opts.ShowText = false
	code, err := barcode.NewCode128(opts)
	if err != nil {
		t.Fatalf("NewCode128: %v", err)
	}
	img, err := code.Synthesize(context.Background(), "0000000000000")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if img.Bounds().Dy() != opts.BarHeight+2*opts.Margin {
		t.Fatalf("unexpected height %d", img.Bounds().Dy())
	}
}

func TestCode128RejectsUnencodablePayload(t *testing.T) {
	code, err := barcode.NewCode128(barcode.DefaultCode128Options())
	if err != nil {
		t.Fatalf("NewCode128: %v", err)
	}
	for _, payload := range []string{"", "6820253043€"} {
		_, err := code.Synthesize(context.Background(), payload)
		var encErr *barcode.EncodingError
		if !errors.As(err, &encErr) {
			t.Fatalf("payload %q: expected EncodingError, got %v", payload, err)
		}
		if encErr.Symbology != barcode.SymbologyCode128 || encErr.Payload != payload {
			t.Fatalf("unexpected error fields: %+v", encErr)
		}
	}
}

func TestCode128HonorsCancellation(t *testing.T) {
	code, err := barcode.NewCode128(barcode.DefaultCode128Options())
	if err != nil {
		t.Fatalf("NewCode128: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := code.Synthesize(ctx, "123"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNewCode128RejectsBadOptions(t *testing.T) {
	opts := barcode.DefaultCode128Options()
	opts.BarHeight = 0
	if _, err := barcode.NewCode128(opts); err == nil {
		t.Fatal("expected error for zero bar height")
	}
}

func TestQRSynthesize(t *testing.T) {
	small, err := barcode.NewQR("M", 2)
	if err != nil {
		t.Fatalf("NewQR: %v", err)
	}
	large, err := barcode.NewQR("M", 4)
	if err != nil {
		t.Fatalf("NewQR: %v", err)
	}
	a, err := small.Synthesize("https://adf.eagur.com")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	b, err := large.Synthesize("https://adf.eagur.com")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if a.Bounds().Dx() != a.Bounds().Dy() {
		t.Fatalf("qr image should be square, got %v", a.Bounds())
	}
	if b.Bounds().Dx() != 2*a.Bounds().Dx() {
		t.Fatalf("scale should multiply size: %d vs %d", a.Bounds().Dx(), b.Bounds().Dx())
	}
}

func TestQRRejectsOversizedContent(t *testing.T) {
	q, err := barcode.NewQR("H", 1)
	if err != nil {
		t.Fatalf("NewQR: %v", err)
	}
	_, err = q.Synthesize(strings.Repeat("x", 5000))
	var encErr *barcode.EncodingError
	if !errors.As(err, &encErr) || encErr.Symbology != barcode.SymbologyQR {
		t.Fatalf("expected qr EncodingError, got %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"l", "M", " q ", "H"} {
		if _, err := barcode.ParseLevel(name); err != nil {
			t.Fatalf("ParseLevel(%q): %v", name, err)
		}
	}
	if _, err := barcode.ParseLevel("Z"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if _, err := barcode.NewQR("M", 0); err == nil {
		t.Fatal("expected error for zero scale")
	}
}

func hasDarkPixel(img image.Image, y int) bool {
	b := img.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		r, g, bl, _ := img.At(x, y).RGBA()
		if r < 0x8000 && g < 0x8000 && bl < 0x8000 {
			return true
		}
	}
	return false
}
