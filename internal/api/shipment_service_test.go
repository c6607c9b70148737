package api_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ledger/internal/api"
	"ledger/internal/delivery"
	"ledger/internal/labels"
	"ledger/internal/services"
	"ledger/internal/shipment"
	"ledger/internal/testsupport"
)

func newService(t *testing.T) (*api.ShipmentService, string) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	assembler, err := labels.NewAssembler(cfg, nil)
	if err != nil {
		t.Fatalf("NewAssembler: %v", err)
	}
	return api.NewShipmentService(st, assembler, delivery.NewLocal(cfg.Paths.OutputDir, nil), nil), cfg.Paths.OutputDir
}

func TestServiceCreateDescribeReplace(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, api.ShipmentFields{HouseBillNumber: "HB1", ConsigneeName: "Jane", Pieces: shipment.Int(2)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != "pending" || created.StatusLabel != "Pending" {
		t.Fatalf("unexpected status %q/%q", created.Status, created.StatusLabel)
	}

	replaced, err := svc.Replace(ctx, created.ID, api.ShipmentFields{HouseBillNumber: "HB1", ConsigneeName: "Jane Doe"})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if replaced.ConsigneeName != "Jane Doe" || replaced.Pieces != nil || replaced.Status != "pending" {
		t.Fatalf("unexpected replaced shipment %+v", replaced)
	}
	if replaced.CreatedAt != created.CreatedAt {
		t.Fatalf("creation time changed: %s -> %s", created.CreatedAt, replaced.CreatedAt)
	}

	if _, err := svc.Describe(ctx, "missing"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.Replace(ctx, "missing", api.ShipmentFields{HouseBillNumber: "X"}); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.Create(ctx, api.ShipmentFields{ConsigneeName: "No bill"}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceBatchPatchStatusStats(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	batch, err := svc.CreateBatch(ctx, api.BatchRequest{Prefix: "erdf", Start: 8, Count: 3})
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	if len(batch.IDs) != 3 {
		t.Fatalf("expected 3 ids, got %d", len(batch.IDs))
	}
	list, err := svc.List(ctx, nil, "ERDF01", 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].HouseBillNumber != "ERDF010" {
		t.Fatalf("unexpected search result %+v", list)
	}

	city := "Brisbane"
	patched, err := svc.Patch(ctx, api.BulkPatchRequest{IDs: batch.IDs[:2], Patch: api.ShipmentPatch{ConsigneeCity: &city}})
	if err != nil || patched.Count != 2 {
		t.Fatalf("Patch: count=%d err=%v", patched.Count, err)
	}
	if _, err := svc.Patch(ctx, api.BulkPatchRequest{Patch: api.ShipmentPatch{ConsigneeCity: &city}}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for empty selection, got %v", err)
	}

	updated, err := svc.SetStatusByPrefix(ctx, api.StatusByPrefixRequest{Prefix: "ERDF", Status: "in transit"})
	if err != nil || updated.Count != 3 {
		t.Fatalf("SetStatusByPrefix: count=%d err=%v", updated.Count, err)
	}
	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Counts["in_transit"] != 3 || stats.Total != 3 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if _, err := svc.List(ctx, []string{"bogus"}, "", 0); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for bad status filter, got %v", err)
	}
}

func TestServiceDelete(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	batch, err := svc.CreateBatch(ctx, api.BatchRequest{Prefix: "AB", Start: 1, Count: 3})
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	if err := svc.Delete(ctx, batch.IDs[0]); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, batch.IDs[0]); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
	resp, err := svc.DeleteMany(ctx, batch.IDs[1:])
	if err != nil || resp.Count != 2 {
		t.Fatalf("DeleteMany: count=%d err=%v", resp.Count, err)
	}
}

func TestServiceImport(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	csv := "House Bill Number,Consignee Name,Weight In KG\nHB1,Jane,abc\nHB2,John,3\n"
	resp, err := svc.Import(ctx, strings.NewReader(csv), "manifest.csv")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if resp.Imported != 2 || len(resp.Issues) != 1 {
		t.Fatalf("unexpected import response %+v", resp)
	}

	_, err = svc.Import(ctx, strings.NewReader("House Bill Number\n\n"), "empty.csv")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for empty import, got %v", err)
	}
}

func TestServiceGenerateLabels(t *testing.T) {
	svc, outDir := newService(t)
	ctx := context.Background()

	if _, err := svc.GenerateLabels(ctx, api.LabelRequest{}, true); !errors.Is(err, labels.ErrEmptySelection) {
		t.Fatalf("expected empty selection error, got %v", err)
	}

	batch, err := svc.CreateBatch(ctx, api.BatchRequest{Prefix: "LB", Start: 1, Count: 2})
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	ids := []string{batch.IDs[1], batch.IDs[0]}

	if _, err := svc.GenerateLabels(ctx, api.LabelRequest{Search: "  "}, false); !errors.Is(err, labels.ErrEmptySelection) {
		t.Fatalf("a request selecting nothing must not print the ledger, got %v", err)
	}
	everything, err := svc.GenerateLabels(ctx, api.LabelRequest{All: true}, false)
	if err != nil {
		t.Fatalf("GenerateLabels all: %v", err)
	}
	if everything.Artifact.Pages != 2 {
		t.Fatalf("expected every shipment printed with All, got %d pages", everything.Artifact.Pages)
	}

	streamed, err := svc.GenerateLabels(ctx, api.LabelRequest{IDs: ids}, false)
	if err != nil {
		t.Fatalf("GenerateLabels stream: %v", err)
	}
	if streamed.Location != "" || streamed.Artifact.Pages != 2 {
		t.Fatalf("unexpected streamed delivery %+v", streamed)
	}
	if streamed.Artifact.Outcomes[0].HouseBillNumber != "LB002" {
		t.Fatalf("pages should follow requested order, got %+v", streamed.Artifact.Outcomes)
	}
	entries, _ := os.ReadDir(outDir)
	if len(entries) != 0 {
		t.Fatal("streamed documents must not be written to the output dir")
	}

	delivered, err := svc.GenerateLabels(ctx, api.LabelRequest{Statuses: []string{"pending"}}, true)
	if err != nil {
		t.Fatalf("GenerateLabels deliver: %v", err)
	}
	if filepath.Dir(delivered.Location) != outDir {
		t.Fatalf("unexpected location %q", delivered.Location)
	}
	if _, err := os.Stat(delivered.Location); err != nil {
		t.Fatalf("delivered file missing: %v", err)
	}

	if _, err := svc.GenerateLabels(ctx, api.LabelRequest{IDs: []string{"ghost"}}, false); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found for unknown id, got %v", err)
	}
}
