package labels

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"ledger/internal/barcode"
	"ledger/internal/config"
	"ledger/internal/logging"
	"ledger/internal/services"
	"ledger/internal/shipment"
	"ledger/internal/textutil"
)

// ContentTypePDF is the media type of assembled artifacts.
const ContentTypePDF = "application/pdf"

// BarcodeSynthesizer renders a linear barcode for a payload.
type BarcodeSynthesizer interface {
	Synthesize(ctx context.Context, payload string) (image.Image, error)
}

// QRSynthesizer renders a QR code for fixed content.
type QRSynthesizer interface {
	Synthesize(content string) (image.Image, error)
}

// PageOutcome records what happened to one page. Err is an
// *barcode.EncodingError when the page was printed without images.
type PageOutcome struct {
	Index           int
	RecordID        string
	HouseBillNumber string
	Payload         string
	Err             error
}

// Artifact is a finished label document. It is never modified after Assemble returns.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
	Pages       int
	Outcomes    []PageOutcome
	GeneratedAt time.Time
}

// Degraded returns how many pages were printed without barcode and QR images.
func (a *Artifact) Degraded() int {
	if a == nil {
		return 0
	}
	n := 0
	for _, outcome := range a.Outcomes {
		var encErr *barcode.EncodingError
		if errors.As(outcome.Err, &encErr) {
			n++
		}
	}
	return n
}

// Size is the artifact length in bytes.
func (a *Artifact) Size() int64 {
	if a == nil {
		return 0
	}
	return int64(len(a.Data))
}

// Filename builds "<product>-Logistics-<YYYY-MM-DD>.pdf" for the UTC date of at.
func Filename(product string, at time.Time) string {
	product = textutil.SanitizeFileName(product)
	if product == "" {
		product = "Labels"
	}
	return fmt.Sprintf("%s-Logistics-%s.pdf", product, at.UTC().Format(time.DateOnly))
}

// Assembler builds label documents. Each Assemble call uses its own canvas.
type Assembler struct {
	Layout    Layout
	Deriver   barcode.Deriver
	Barcode   BarcodeSynthesizer
	QR        QRSynthesizer
	QRContent string
	Product   string
	Workers   int
	NewCanvas func() (Canvas, error)
	Now       func() time.Time
	Logger    *slog.Logger
}

// NewAssembler wires an Assembler from configuration with the PDF canvas.
func NewAssembler(cfg *config.Config, logger *slog.Logger) (*Assembler, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "labels", "init", "config is nil", nil)
	}
	code, err := barcode.NewCode128(barcode.DefaultCode128Options())
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "labels", "init", "barcode renderer", err)
	}
	qr, err := barcode.NewQR(cfg.Render.QRErrorCorrection, cfg.Render.QRScale)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "labels", "init", "qr renderer", err)
	}
	geometry := GeometryFromConfig(cfg.Render)
	return &Assembler{
		Layout: Layout{
			Geometry: geometry,
			Content: Content{
				Title:            cfg.Label.Title,
				Caption:          cfg.CaptionText(),
				AddressSeparator: cfg.Label.AddressSeparator,
			},
		},
		Deriver:   barcode.NewDeriver(cfg.Label.BarcodePrefix),
		Barcode:   code,
		QR:        qr,
		QRContent: cfg.Label.QRURL,
		Product:   cfg.Label.ProductPrefix,
		Workers:   cfg.Render.Workers,
		NewCanvas: func() (Canvas, error) { return NewPDFCanvas(geometry) },
		Logger:    logging.NewComponentLogger(logger, "labels"),
	}, nil
}

// Assemble draws one page per record in input order and serializes the
// document. Artwork failures degrade single pages; any canvas failure or
// cancellation aborts and returns no artifact.
func (a *Assembler) Assemble(ctx context.Context, records []shipment.Record) (*Artifact, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	generatedAt := a.now()
	logger := logging.WithContext(ctx, a.logger())

	artwork, err := a.synthesizeAll(ctx, records)
	if err != nil {
		return nil, err
	}

	canvas, err := a.NewCanvas()
	if err != nil {
		return nil, &SerializationError{Op: "create canvas", Err: err}
	}
	outcomes := make([]PageOutcome, len(records))
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := canvas.AddPage(); err != nil {
			return nil, &SerializationError{Op: fmt.Sprintf("add page %d", i+1), Err: err}
		}
		if err := a.Layout.Draw(canvas, rec, artwork[i]); err != nil {
			return nil, &SerializationError{Op: fmt.Sprintf("draw page %d", i+1), Err: err}
		}
		outcomes[i] = PageOutcome{
			Index:           i,
			RecordID:        rec.ID,
			HouseBillNumber: rec.HouseBillNumber,
			Payload:         artwork[i].Payload,
			Err:             artwork[i].Err,
		}
		if artwork[i].Err != nil {
			pageLogger := logging.WithContext(services.WithRecordID(ctx, rec.ID), a.logger())
			logging.WarnWithContext(pageLogger, "label page printed without barcode",
				"label_artwork_failed",
				logging.String("house_bill", rec.HouseBillNumber),
				logging.String("payload", artwork[i].Payload),
				logging.Error(artwork[i].Err),
				logging.String(logging.FieldErrorHint, "check the container or house bill number for characters Code 128 cannot encode"),
				logging.String(logging.FieldImpact, "page printed with text rows only"),
			)
		}
	}

	data, err := canvas.Bytes()
	if err != nil {
		return nil, &SerializationError{Op: "serialize", Err: err}
	}
	artifact := &Artifact{
		Filename:    Filename(a.Product, generatedAt),
		ContentType: ContentTypePDF,
		Data:        data,
		Pages:       canvas.PageCount(),
		Outcomes:    outcomes,
		GeneratedAt: generatedAt,
	}
	logger.Info("label document assembled",
		logging.String("filename", artifact.Filename),
		logging.Int("pages", artifact.Pages),
		logging.Int("degraded", artifact.Degraded()),
		logging.Int64("bytes", artifact.Size()),
	)
	return artifact, nil
}

// synthesizeAll renders artwork for every record. Results land at the
// record's index so page order never depends on completion order.
func (a *Assembler) synthesizeAll(ctx context.Context, records []shipment.Record) ([]Artwork, error) {
	artwork := make([]Artwork, len(records))
	if len(records) == 0 {
		return artwork, nil
	}

	qrImage, qrErr := a.QR.Synthesize(a.QRContent)
	if qrErr != nil {
		qrErr = asEncodingError(barcode.SymbologyQR, a.QRContent, qrErr)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(a.Workers, 1))
	for i := range records {
		group.Go(func() error {
			payload := a.Deriver.Derive(records[i].BarcodeSource())
			art := Artwork{Payload: payload, QR: qrImage, Err: qrErr}
			if qrErr == nil {
				img, err := a.Barcode.Synthesize(groupCtx, payload)
				if err != nil {
					if ctxErr := groupCtx.Err(); ctxErr != nil {
						return ctxErr
					}
					art.Err = asEncodingError(barcode.SymbologyCode128, payload, err)
				}
				art.Barcode = img
			}
			artwork[i] = art
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return artwork, nil
}

func asEncodingError(symbology, payload string, err error) error {
	var encErr *barcode.EncodingError
	if errors.As(err, &encErr) {
		return err
	}
	return &barcode.EncodingError{Symbology: symbology, Payload: payload, Err: err}
}

func (a *Assembler) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *Assembler) logger() *slog.Logger {
	if a.Logger == nil {
		return logging.NewNop()
	}
	return a.Logger
}
