package api

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"ledger/internal/barcode"
	"ledger/internal/labels"
	"ledger/internal/services"
	"ledger/internal/shipment"
)

func TestFromRecordJSON(t *testing.T) {
	rec := shipment.Record{
		ID:              "abc",
		HouseBillNumber: "HB001",
		WeightKG:        shipment.Float(12.5),
		Status:          shipment.StatusInTransit,
		CreatedAt:       time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
	}
	raw, err := json.Marshal(FromRecord(rec))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)
	for _, want := range []string{`"id":"abc"`, `"houseBillNumber":"HB001"`, `"weightInKG":12.5`, `"status":"in_transit"`, `"statusLabel":"In Transit"`, `"createdAt":"2024-01-15T09:00:00.000Z"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %s in %s", want, body)
		}
	}
	if strings.Contains(body, "pieces") || strings.Contains(body, "updatedAt") {
		t.Fatalf("missing values should be omitted: %s", body)
	}
}

func TestToRecordValidatesStatus(t *testing.T) {
	rec, err := ToRecord(ShipmentFields{HouseBillNumber: " HB1 ", Status: "In Transit"})
	if err != nil {
		t.Fatalf("ToRecord: %v", err)
	}
	if rec.HouseBillNumber != "HB1" || rec.Status != shipment.StatusInTransit {
		t.Fatalf("unexpected record %+v", rec)
	}
	if _, err := ToRecord(ShipmentFields{Status: "lost"}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestToPatch(t *testing.T) {
	city := "Perth"
	status := "delivered"
	patch, err := ToPatch(ShipmentPatch{ConsigneeCity: &city, Status: &status})
	if err != nil {
		t.Fatalf("ToPatch: %v", err)
	}
	if *patch.ConsigneeCity != "Perth" || *patch.Status != shipment.StatusDelivered {
		t.Fatalf("unexpected patch %+v", patch)
	}
	bad := "gone"
	if _, err := ToPatch(ShipmentPatch{Status: &bad}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseStatuses(t *testing.T) {
	got, err := ParseStatuses([]string{"pending,in transit", "", "Delivered"})
	if err != nil {
		t.Fatalf("ParseStatuses: %v", err)
	}
	if len(got) != 3 || got[1] != shipment.StatusInTransit {
		t.Fatalf("unexpected statuses %v", got)
	}
	if _, err := ParseStatuses([]string{"pending,nope"}); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestMergeStats(t *testing.T) {
	resp := MergeStats(map[shipment.Status]int{shipment.StatusPending: 2, shipment.StatusDelivered: 1})
	if resp.Total != 3 || resp.Counts["pending"] != 2 || resp.Counts["cancelled"] != 0 {
		t.Fatalf("unexpected stats %+v", resp)
	}
	if _, ok := resp.Counts["in_transit"]; !ok {
		t.Fatal("every status should be present")
	}
}

func TestFromDelivery(t *testing.T) {
	delivery := &labels.Delivery{
		Location: "/labels/x.pdf",
		Artifact: &labels.Artifact{
			Filename:    "x.pdf",
			Data:        []byte("pdf"),
			Pages:       2,
			GeneratedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Outcomes: []labels.PageOutcome{
				{Index: 0, RecordID: "a", HouseBillNumber: "HB1", Payload: "6820253043HB1"},
				{Index: 1, RecordID: "b", Payload: "0000000000000", Err: &barcode.EncodingError{Symbology: "code128", Payload: "0000000000000", Err: errors.New("boom")}},
			},
		},
	}
	resp := FromDelivery(delivery)
	if resp.Pages != 2 || resp.Degraded != 1 || resp.Bytes != 3 || resp.Location != "/labels/x.pdf" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Outcomes[1].Page != 2 || resp.Outcomes[1].Error == "" || resp.Outcomes[0].Error != "" {
		t.Fatalf("unexpected outcomes %+v", resp.Outcomes)
	}
	if empty := FromDelivery(nil); empty.Pages != 0 || empty.Outcomes != nil {
		t.Fatalf("nil delivery should convert to zero value, got %+v", empty)
	}
}
