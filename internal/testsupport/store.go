package testsupport

import (
	"testing"

	"ledger/internal/config"
	"ledger/internal/shipment"
	"ledger/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	s, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

// SampleRecord returns a fully populated shipment for tests.
func SampleRecord(houseBill string) shipment.Record {
	return shipment.Record{
		HouseBillNumber:      houseBill,
		ShipperName:          "Aodefa Freight",
		ShipperCity:          "Shenzhen",
		ShipperCountryCode:   "CN",
		ConsigneeName:        "Jane Citizen",
		ConsigneeAddress1:    "12 Harbour Rd",
		ConsigneeAddress2:    "Unit 4",
		ConsigneeCity:        "Sydney",
		ConsigneePostcode:    "2000",
		ConsigneeState:       "NSW",
		ConsigneeCountryCode: "AU",
		ConsigneePhone:       "+61 400 000 000",
		GoodsDescription:     "Apparel",
		WeightKG:             shipment.Float(12.5),
		Pieces:               shipment.Int(3),
		GoodsValue:           shipment.Float(250),
		Currency:             "AUD",
		CBM:                  shipment.Float(0.2),
		ContainerNumber:      "MSCU1234567",
	}
}
