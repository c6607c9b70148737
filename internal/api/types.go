package api

import "strings"

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// ShipmentFields carries the editable fields of a shipment.
type ShipmentFields struct {
	HouseBillNumber    string `json:"houseBillNumber"`
	HouseBillReference string `json:"houseBillReference,omitempty"`

	ShipperName        string `json:"shipperName,omitempty"`
	ShipperAddress1    string `json:"shipperAddress1,omitempty"`
	ShipperAddress2    string `json:"shipperAddress2,omitempty"`
	ShipperCity        string `json:"shipperCity,omitempty"`
	ShipperState       string `json:"shipperState,omitempty"`
	ShipperCountryCode string `json:"shipperCountryCode,omitempty"`
	ShipperPostcode    string `json:"shipperPostcode,omitempty"`

	ConsigneeName        string `json:"consigneeName,omitempty"`
	ConsigneeAddress1    string `json:"consigneeAddress1,omitempty"`
	ConsigneeAddress2    string `json:"consigneeAddress2,omitempty"`
	ConsigneeCity        string `json:"consigneeCity,omitempty"`
	ConsigneePostcode    string `json:"consigneePostcode,omitempty"`
	ConsigneeState       string `json:"consigneeState,omitempty"`
	ConsigneeCountryCode string `json:"consigneeCountryCode,omitempty"`
	ConsigneePhone       string `json:"consigneePhone,omitempty"`

	DeliveryInstructions string   `json:"deliveryInstructions,omitempty"`
	GoodsDescription     string   `json:"goodsDescription,omitempty"`
	WeightKG             *float64 `json:"weightInKG,omitempty"`
	Pieces               *int     `json:"pieces,omitempty"`
	PackType             string   `json:"packType,omitempty"`
	GoodsValue           *float64 `json:"goodsValue,omitempty"`
	Currency             string   `json:"currency,omitempty"`
	CBM                  *float64 `json:"cbm,omitempty"`
	SACYN                string   `json:"sacYN,omitempty"`
	MerchantARNABN       string   `json:"merchantARNABN,omitempty"`
	PurchaserABN         string   `json:"purchaserABN,omitempty"`
	ContainerNumber      string   `json:"containerNumber,omitempty"`

	Status                string `json:"status,omitempty"`
	CurrentLocation       string `json:"currentLocation,omitempty"`
	TrackingNumber        string `json:"trackingNumber,omitempty"`
	EstimatedDeliveryDate string `json:"estimatedDeliveryDate,omitempty"`
	ActualDeliveryDate    string `json:"actualDeliveryDate,omitempty"`
	Notes                 string `json:"notes,omitempty"`
}

// Shipment describes a stored shipment in a transport-friendly format.
type Shipment struct {
	ID string `json:"id"`
	ShipmentFields
	StatusLabel string `json:"statusLabel"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// ShipmentPatch is a bulk edit. Omitted fields are left unchanged.
type ShipmentPatch struct {
	HouseBillReference *string `json:"houseBillReference,omitempty"`

	ShipperName        *string `json:"shipperName,omitempty"`
	ShipperAddress1    *string `json:"shipperAddress1,omitempty"`
	ShipperAddress2    *string `json:"shipperAddress2,omitempty"`
	ShipperCity        *string `json:"shipperCity,omitempty"`
	ShipperState       *string `json:"shipperState,omitempty"`
	ShipperCountryCode *string `json:"shipperCountryCode,omitempty"`
	ShipperPostcode    *string `json:"shipperPostcode,omitempty"`

	ConsigneeName        *string `json:"consigneeName,omitempty"`
	ConsigneeAddress1    *string `json:"consigneeAddress1,omitempty"`
	ConsigneeAddress2    *string `json:"consigneeAddress2,omitempty"`
	ConsigneeCity        *string `json:"consigneeCity,omitempty"`
	ConsigneePostcode    *string `json:"consigneePostcode,omitempty"`
	ConsigneeState       *string `json:"consigneeState,omitempty"`
	ConsigneeCountryCode *string `json:"consigneeCountryCode,omitempty"`
	ConsigneePhone       *string `json:"consigneePhone,omitempty"`

	DeliveryInstructions *string  `json:"deliveryInstructions,omitempty"`
	GoodsDescription     *string  `json:"goodsDescription,omitempty"`
	WeightKG             *float64 `json:"weightInKG,omitempty"`
	Pieces               *int     `json:"pieces,omitempty"`
	PackType             *string  `json:"packType,omitempty"`
	GoodsValue           *float64 `json:"goodsValue,omitempty"`
	Currency             *string  `json:"currency,omitempty"`
	CBM                  *float64 `json:"cbm,omitempty"`
	SACYN                *string  `json:"sacYN,omitempty"`
	MerchantARNABN       *string  `json:"merchantARNABN,omitempty"`
	PurchaserABN         *string  `json:"purchaserABN,omitempty"`
	ContainerNumber      *string  `json:"containerNumber,omitempty"`

	Status                *string `json:"status,omitempty"`
	CurrentLocation       *string `json:"currentLocation,omitempty"`
	TrackingNumber        *string `json:"trackingNumber,omitempty"`
	EstimatedDeliveryDate *string `json:"estimatedDeliveryDate,omitempty"`
	ActualDeliveryDate    *string `json:"actualDeliveryDate,omitempty"`
	Notes                 *string `json:"notes,omitempty"`
}

// ShipmentListResponse wraps a collection of shipments.
type ShipmentListResponse struct {
	Items []Shipment `json:"items"`
}

// StatsResponse provides shipment counts keyed by status.
type StatsResponse struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

// IDsRequest selects shipments by identifier.
type IDsRequest struct {
	IDs []string `json:"ids"`
}

// BulkPatchRequest applies one patch to many shipments.
type BulkPatchRequest struct {
	IDs   []string      `json:"ids"`
	Patch ShipmentPatch `json:"patch"`
}

// BatchRequest creates placeholder shipments with sequential house bill numbers.
type BatchRequest struct {
	Prefix string `json:"prefix"`
	Start  int    `json:"start"`
	Count  int    `json:"count"`
}

// StatusByPrefixRequest sets the status of every shipment whose house bill
// number starts with Prefix.
type StatusByPrefixRequest struct {
	Prefix string `json:"prefix"`
	Status string `json:"status"`
}

// CountResponse reports how many shipments an operation changed.
type CountResponse struct {
	Count int64 `json:"count"`
}

// CreatedResponse lists identifiers of newly stored shipments.
type CreatedResponse struct {
	IDs []string `json:"ids"`
}

// ImportIssue is one spreadsheet problem reported back to the uploader.
type ImportIssue struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

// ImportResponse summarizes a spreadsheet import.
type ImportResponse struct {
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	IDs      []string      `json:"ids"`
	Issues   []ImportIssue `json:"issues,omitempty"`
}

// LabelRequest selects shipments for label printing. IDs take precedence;
// without IDs the status and search filters select from the store. Printing
// the whole ledger requires All; a request selecting nothing is rejected.
type LabelRequest struct {
	IDs      []string `json:"ids,omitempty"`
	Statuses []string `json:"statuses,omitempty"`
	Search   string   `json:"search,omitempty"`
	All      bool     `json:"all,omitempty"`
}

// Empty reports whether the request selects no shipments at all.
func (r LabelRequest) Empty() bool {
	return len(r.IDs) == 0 && len(r.Statuses) == 0 && strings.TrimSpace(r.Search) == "" && !r.All
}

// PageOutcome reports how one label page was rendered.
type PageOutcome struct {
	Page            int    `json:"page"`
	ID              string `json:"id"`
	HouseBillNumber string `json:"houseBillNumber"`
	Payload         string `json:"payload"`
	Error           string `json:"error,omitempty"`
}

// LabelResponse describes a generated label document.
type LabelResponse struct {
	Filename    string        `json:"filename"`
	Location    string        `json:"location,omitempty"`
	Pages       int           `json:"pages"`
	Degraded    int           `json:"degraded"`
	Bytes       int64         `json:"bytes"`
	GeneratedAt string        `json:"generatedAt"`
	Outcomes    []PageOutcome `json:"outcomes"`
}

// HealthResponse reports daemon liveness.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Storage  string `json:"storage"`
}

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}
