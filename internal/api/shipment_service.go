package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"ledger/internal/importer"
	"ledger/internal/labels"
	"ledger/internal/logging"
	"ledger/internal/services"
	"ledger/internal/shipment"
	"ledger/internal/store"
)

// ShipmentStore abstracts the persistence operations the service needs.
type ShipmentStore interface {
	AddMany(ctx context.Context, recs []shipment.Record) ([]string, error)
	Get(ctx context.Context, id string) (*shipment.Record, error)
	GetMany(ctx context.Context, ids []string) ([]shipment.Record, error)
	List(ctx context.Context, opts store.ListOptions) ([]shipment.Record, error)
	Update(ctx context.Context, rec *shipment.Record) error
	ApplyPatch(ctx context.Context, ids []string, patch shipment.Patch) (int, error)
	UpdateStatusByPrefix(ctx context.Context, prefix string, status shipment.Status) (int64, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteMany(ctx context.Context, ids []string) (int64, error)
	Stats(ctx context.Context) (map[shipment.Status]int, error)
}

// LabelGenerator produces label documents for a record selection.
type LabelGenerator interface {
	Generate(ctx context.Context, records []shipment.Record) (*labels.Delivery, error)
}

// ShipmentService exposes shipment and label operations returning API DTOs.
type ShipmentService struct {
	store   ShipmentStore
	deliver LabelGenerator
	stream  LabelGenerator
	logger  *slog.Logger
}

// NewShipmentService wires the service. Delivered documents go to sink;
// streamed documents are returned to the caller without touching it.
func NewShipmentService(st ShipmentStore, assembler *labels.Assembler, sink labels.Sink, logger *slog.Logger) *ShipmentService {
	svc := &ShipmentService{
		store:  st,
		logger: logging.NewComponentLogger(logger, "api"),
	}
	if assembler != nil {
		svc.deliver = labels.NewGenerator(assembler, sink, logger)
		svc.stream = labels.NewGenerator(assembler, nil, logger)
	}
	return svc
}

// List returns shipments newest first filtered by status and search term.
func (s *ShipmentService) List(ctx context.Context, statuses []string, search string, limit int) ([]Shipment, error) {
	parsed, err := ParseStatuses(statuses)
	if err != nil {
		return nil, err
	}
	recs, err := s.store.List(ctx, store.ListOptions{Statuses: parsed, Search: search, Limit: limit})
	if err != nil {
		return nil, err
	}
	return FromRecords(recs), nil
}

// Describe fetches a single shipment.
func (s *ShipmentService) Describe(ctx context.Context, id string) (*Shipment, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, notFound(id)
	}
	dto := FromRecord(*rec)
	return &dto, nil
}

// Create stores a new shipment.
func (s *ShipmentService) Create(ctx context.Context, fields ShipmentFields) (*Shipment, error) {
	rec, err := ToRecord(fields)
	if err != nil {
		return nil, err
	}
	ids, err := s.store.AddMany(ctx, []shipment.Record{rec})
	if err != nil {
		return nil, err
	}
	return s.Describe(ctx, ids[0])
}

// Replace overwrites every editable field of a shipment. An empty status
// keeps the current one.
func (s *ShipmentService) Replace(ctx context.Context, id string, fields ShipmentFields) (*Shipment, error) {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, notFound(id)
	}
	rec, err := ToRecord(fields)
	if err != nil {
		return nil, err
	}
	rec.ID = existing.ID
	rec.CreatedAt = existing.CreatedAt
	if rec.Status == "" {
		rec.Status = existing.Status
	}
	if err := s.store.Update(ctx, &rec); err != nil {
		return nil, err
	}
	return s.Describe(ctx, id)
}

// Patch applies one edit to many shipments.
func (s *ShipmentService) Patch(ctx context.Context, req BulkPatchRequest) (CountResponse, error) {
	if len(req.IDs) == 0 {
		return CountResponse{}, noSelection("patch")
	}
	patch, err := ToPatch(req.Patch)
	if err != nil {
		return CountResponse{}, err
	}
	n, err := s.store.ApplyPatch(ctx, req.IDs, patch)
	if err != nil {
		return CountResponse{}, err
	}
	s.logger.Info("shipments patched", logging.Int("requested", len(req.IDs)), logging.Int("updated", n))
	return CountResponse{Count: int64(n)}, nil
}

// Delete removes one shipment.
func (s *ShipmentService) Delete(ctx context.Context, id string) error {
	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return notFound(id)
	}
	return nil
}

// DeleteMany removes every listed shipment.
func (s *ShipmentService) DeleteMany(ctx context.Context, ids []string) (CountResponse, error) {
	if len(ids) == 0 {
		return CountResponse{}, noSelection("delete")
	}
	n, err := s.store.DeleteMany(ctx, ids)
	if err != nil {
		return CountResponse{}, err
	}
	s.logger.Info("shipments deleted", logging.Int("requested", len(ids)), logging.Int64("deleted", n))
	return CountResponse{Count: n}, nil
}

// CreateBatch stores placeholder shipments with sequential house bill numbers.
func (s *ShipmentService) CreateBatch(ctx context.Context, req BatchRequest) (CreatedResponse, error) {
	recs, err := shipment.Blank(req.Prefix, req.Start, req.Count)
	if err != nil {
		return CreatedResponse{}, err
	}
	ids, err := s.store.AddMany(ctx, recs)
	if err != nil {
		return CreatedResponse{}, err
	}
	s.logger.Info("blank shipments created",
		logging.String("first", recs[0].HouseBillNumber),
		logging.String("last", recs[len(recs)-1].HouseBillNumber),
		logging.Int("count", len(ids)),
	)
	return CreatedResponse{IDs: ids}, nil
}

// Import reads a spreadsheet and stores every valid row in one transaction.
func (s *ShipmentService) Import(ctx context.Context, r io.Reader, filename string) (ImportResponse, error) {
	result, err := importer.Read(r, filename)
	if err != nil {
		return ImportResponse{}, err
	}
	if len(result.Records) == 0 {
		return FromImportResult(result, nil), services.Wrap(services.ErrValidation, "import", "read rows", "no shipments found in "+filename, nil)
	}
	ids, err := s.store.AddMany(ctx, result.Records)
	if err != nil {
		return ImportResponse{}, err
	}
	if len(result.Issues) > 0 {
		logging.WarnWithContext(logging.WithContext(ctx, s.logger), "spreadsheet imported with issues", "import_row_issues",
			logging.String("file", filename),
			logging.Int("issues", len(result.Issues)),
			logging.Int("skipped", result.Skipped),
			logging.String(logging.FieldErrorHint, "review the reported rows and correct the spreadsheet"),
			logging.String(logging.FieldImpact, "some cells were stored as 0 or rows were skipped"),
		)
	}
	s.logger.Info("spreadsheet imported", logging.String("file", filename), logging.Int("imported", len(ids)))
	return FromImportResult(result, ids), nil
}

// SetStatusByPrefix updates the status of every shipment in a house bill series.
func (s *ShipmentService) SetStatusByPrefix(ctx context.Context, req StatusByPrefixRequest) (CountResponse, error) {
	status, ok := shipment.ParseStatus(req.Status)
	if !ok {
		return CountResponse{}, invalidStatus(req.Status)
	}
	n, err := s.store.UpdateStatusByPrefix(ctx, req.Prefix, status)
	if err != nil {
		return CountResponse{}, err
	}
	s.logger.Info("status updated by prefix",
		logging.String("prefix", strings.TrimSpace(req.Prefix)),
		logging.String("status", string(status)),
		logging.Int64("updated", n),
	)
	return CountResponse{Count: n}, nil
}

// Stats returns shipment counts for every status.
func (s *ShipmentService) Stats(ctx context.Context) (StatsResponse, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return StatsResponse{}, err
	}
	return MergeStats(stats), nil
}

// SelectForLabels resolves a label request into records in print order.
func (s *ShipmentService) SelectForLabels(ctx context.Context, req LabelRequest) ([]shipment.Record, error) {
	if req.Empty() {
		return nil, labels.ErrEmptySelection
	}
	if len(req.IDs) > 0 {
		return s.store.GetMany(ctx, req.IDs)
	}
	statuses, err := ParseStatuses(req.Statuses)
	if err != nil {
		return nil, err
	}
	return s.store.List(ctx, store.ListOptions{Statuses: statuses, Search: req.Search})
}

// GenerateLabels builds the label document for req. With deliver set the
// document goes to the configured sink; otherwise it is only returned.
func (s *ShipmentService) GenerateLabels(ctx context.Context, req LabelRequest, deliver bool) (*labels.Delivery, error) {
	generator := s.stream
	if deliver {
		generator = s.deliver
	}
	if generator == nil {
		return nil, services.Wrap(services.ErrConfiguration, "labels", "generate", "label generation is not configured", nil)
	}
	recs, err := s.SelectForLabels(ctx, req)
	if err != nil {
		return nil, err
	}
	return generator.Generate(services.WithStage(ctx, "labels"), recs)
}

func notFound(id string) error {
	return services.Wrap(services.ErrNotFound, "api", "lookup", fmt.Sprintf("shipment %s", id), nil)
}

func noSelection(op string) error {
	return services.Wrap(services.ErrValidation, "api", op, "no shipments selected", nil)
}
