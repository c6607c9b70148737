package shipment_test

import (
	"sync"
	"testing"

	"ledger/internal/shipment"
)

func TestTextCoercion(t *testing.T) {
	var missingFloat *float64
	var missingInt *int
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, ""},
		{"nil float pointer", missingFloat, ""},
		{"nil int pointer", missingInt, ""},
		{"string", "ACME", "ACME"},
		{"whole float", 3.0, "3"},
		{"fractional float", 12.5, "12.5"},
		{"float pointer", shipment.Float(0.25), "0.25"},
		{"int pointer", shipment.Int(7), "7"},
		{"int", 42, "42"},
		{"status", shipment.StatusInTransit, "in_transit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shipment.Text(tt.value); got != tt.want {
				t.Fatalf("Text(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestBarcodeSourcePrefersContainer(t *testing.T) {
	rec := shipment.Record{HouseBillNumber: "HB123456", ContainerNumber: "MSCU1234567"}
	if got := rec.BarcodeSource(); got != "MSCU1234567" {
		t.Fatalf("expected container number, got %q", got)
	}
	rec.ContainerNumber = ""
	if got := rec.BarcodeSource(); got != "HB123456" {
		t.Fatalf("expected house bill fallback, got %q", got)
	}
}

func TestConsigneeAddressSkipsEmptyLines(t *testing.T) {
	tests := []struct {
		a1, a2 string
		want   string
	}{
		{"12 Rd", "Unit 4", "12 Rd, Unit 4"},
		{"12 Rd", "", "12 Rd"},
		{"", "Unit 4", "Unit 4"},
		{"", "", ""},
	}
	for _, tt := range tests {
		rec := shipment.Record{ConsigneeAddress1: tt.a1, ConsigneeAddress2: tt.a2}
		if got := rec.ConsigneeAddress(", "); got != tt.want {
			t.Fatalf("ConsigneeAddress(%q, %q) = %q, want %q", tt.a1, tt.a2, got, tt.want)
		}
	}
}

func TestGoodsValueText(t *testing.T) {
	rec := shipment.Record{GoodsValue: shipment.Float(250), Currency: "AUD"}
	if got := rec.GoodsValueText(); got != "250 AUD" {
		t.Fatalf("unexpected goods value text %q", got)
	}
	rec = shipment.Record{}
	if got := rec.GoodsValueText(); got != " " {
		t.Fatalf("expected blank goods value text, got %q", got)
	}
}

func TestMatches(t *testing.T) {
	rec := shipment.Record{
		HouseBillNumber: "ERDF001",
		ConsigneeName:   "Jane Citizen",
		ContainerNumber: "MSCU1234567",
		Status:          shipment.StatusDelivered,
	}
	for _, term := range []string{"", "erdf", "jane", "mscu12", "DELIVER"} {
		if !rec.Matches(term) {
			t.Fatalf("expected %q to match", term)
		}
	}
	if rec.Matches("sydney") {
		t.Fatal("expected no match for unrelated term")
	}
}

func TestParseStatusAndLabel(t *testing.T) {
	tests := []struct {
		in    string
		want  shipment.Status
		label string
	}{
		{"pending", shipment.StatusPending, "Pending"},
		{" In Transit ", shipment.StatusInTransit, "In Transit"},
		{"in-transit", shipment.StatusInTransit, "In Transit"},
		{"DELIVERED", shipment.StatusDelivered, "Delivered"},
		{"cancelled", shipment.StatusCancelled, "Cancelled"},
	}
	for _, tt := range tests {
		got, ok := shipment.ParseStatus(tt.in)
		if !ok || got != tt.want {
			t.Fatalf("ParseStatus(%q) = %q, %v", tt.in, got, ok)
		}
		if got.Label() != tt.label {
			t.Fatalf("Label(%q) = %q, want %q", got, got.Label(), tt.label)
		}
	}
	if _, ok := shipment.ParseStatus("lost"); ok {
		t.Fatal("expected unknown status to be rejected")
	}
	if len(shipment.AllStatuses()) != 4 {
		t.Fatalf("unexpected status count %d", len(shipment.AllStatuses()))
	}
}

func TestNormalizeDefaultsStatus(t *testing.T) {
	rec := shipment.Record{HouseBillNumber: "  HB1 "}
	rec.Normalize()
	if rec.HouseBillNumber != "HB1" {
		t.Fatalf("expected trimmed house bill, got %q", rec.HouseBillNumber)
	}
	if rec.Status != shipment.StatusPending {
		t.Fatalf("expected pending default, got %q", rec.Status)
	}
}

func TestLabelConcurrentCallers(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan string, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				if got := shipment.StatusInTransit.Label(); got != "In Transit" {
					errs <- got
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Fatalf("Label() = %q under concurrent use", got)
	}
}
