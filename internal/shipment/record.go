package shipment

import (
	"strings"
	"time"
)

// Record is a single logistics shipment identified by its house bill number.
type Record struct {
	ID                 string
	HouseBillNumber    string
	HouseBillReference string

	ShipperName        string
	ShipperAddress1    string
	ShipperAddress2    string
	ShipperCity        string
	ShipperState       string
	ShipperCountryCode string
	ShipperPostcode    string

	ConsigneeName        string
	ConsigneeAddress1    string
	ConsigneeAddress2    string
	ConsigneeCity        string
	ConsigneePostcode    string
	ConsigneeState       string
	ConsigneeCountryCode string
	ConsigneePhone       string

	DeliveryInstructions string
	GoodsDescription     string
	WeightKG             *float64
	Pieces               *int
	PackType             string
	GoodsValue           *float64
	Currency             string
	CBM                  *float64
	SACYN                string
	MerchantARNABN       string
	PurchaserABN         string
	ContainerNumber      string

	Status                Status
	CurrentLocation       string
	TrackingNumber        string
	EstimatedDeliveryDate string
	ActualDeliveryDate    string
	Notes                 string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Normalize trims identifiers and fills defaults for a record about to be stored.
func (r *Record) Normalize() {
	r.HouseBillNumber = strings.TrimSpace(r.HouseBillNumber)
	r.ContainerNumber = strings.TrimSpace(r.ContainerNumber)
	r.Currency = strings.TrimSpace(r.Currency)
	if r.Status == "" {
		r.Status = StatusPending
	}
}

// BarcodeSource returns the raw value the label barcode is derived from: the
// container number when present, otherwise the house bill number.
func (r Record) BarcodeSource() string {
	if r.ContainerNumber != "" {
		return r.ContainerNumber
	}
	return r.HouseBillNumber
}

// ConsigneeAddress joins the non-empty consignee address lines with sep.
func (r Record) ConsigneeAddress(sep string) string {
	lines := make([]string, 0, 2)
	for _, line := range []string{r.ConsigneeAddress1, r.ConsigneeAddress2} {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, sep)
}

// GoodsValueText renders the goods value followed by its currency.
func (r Record) GoodsValueText() string {
	return Text(r.GoodsValue) + " " + r.Currency
}

// Matches reports whether the record matches a free-text search over house
// bill, consignee name, container number and status. An empty term matches
// everything.
func (r Record) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, field := range []string{r.HouseBillNumber, r.ConsigneeName, r.ContainerNumber, string(r.Status)} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
