package shipment

// Patch is a partial update applied to one or many records. Nil fields are
// left untouched. The house bill number is deliberately absent: bulk edits
// never rename shipments.
type Patch struct {
	HouseBillReference *string
	ShipperName        *string
	ShipperAddress1    *string
	ShipperAddress2    *string
	ShipperCity        *string
	ShipperState       *string
	ShipperCountryCode *string
	ShipperPostcode    *string

	ConsigneeName        *string
	ConsigneeAddress1    *string
	ConsigneeAddress2    *string
	ConsigneeCity        *string
	ConsigneePostcode    *string
	ConsigneeState       *string
	ConsigneeCountryCode *string
	ConsigneePhone       *string

	DeliveryInstructions *string
	GoodsDescription     *string
	WeightKG             *float64
	Pieces               *int
	PackType             *string
	GoodsValue           *float64
	Currency             *string
	CBM                  *float64
	SACYN                *string
	MerchantARNABN       *string
	PurchaserABN         *string
	ContainerNumber      *string

	Status                *Status
	CurrentLocation       *string
	TrackingNumber        *string
	EstimatedDeliveryDate *string
	ActualDeliveryDate    *string
	Notes                 *string
}

// Apply copies every non-nil patch field onto r.
func (p Patch) Apply(r *Record) {
	setString(&r.HouseBillReference, p.HouseBillReference)
	setString(&r.ShipperName, p.ShipperName)
	setString(&r.ShipperAddress1, p.ShipperAddress1)
	setString(&r.ShipperAddress2, p.ShipperAddress2)
	setString(&r.ShipperCity, p.ShipperCity)
	setString(&r.ShipperState, p.ShipperState)
	setString(&r.ShipperCountryCode, p.ShipperCountryCode)
	setString(&r.ShipperPostcode, p.ShipperPostcode)
	setString(&r.ConsigneeName, p.ConsigneeName)
	setString(&r.ConsigneeAddress1, p.ConsigneeAddress1)
	setString(&r.ConsigneeAddress2, p.ConsigneeAddress2)
	setString(&r.ConsigneeCity, p.ConsigneeCity)
	setString(&r.ConsigneePostcode, p.ConsigneePostcode)
	setString(&r.ConsigneeState, p.ConsigneeState)
	setString(&r.ConsigneeCountryCode, p.ConsigneeCountryCode)
	setString(&r.ConsigneePhone, p.ConsigneePhone)
	setString(&r.DeliveryInstructions, p.DeliveryInstructions)
	setString(&r.GoodsDescription, p.GoodsDescription)
	setString(&r.PackType, p.PackType)
	setString(&r.Currency, p.Currency)
	setString(&r.SACYN, p.SACYN)
	setString(&r.MerchantARNABN, p.MerchantARNABN)
	setString(&r.PurchaserABN, p.PurchaserABN)
	setString(&r.ContainerNumber, p.ContainerNumber)
	setString(&r.CurrentLocation, p.CurrentLocation)
	setString(&r.TrackingNumber, p.TrackingNumber)
	setString(&r.EstimatedDeliveryDate, p.EstimatedDeliveryDate)
	setString(&r.ActualDeliveryDate, p.ActualDeliveryDate)
	setString(&r.Notes, p.Notes)
	if p.WeightKG != nil {
		r.WeightKG = Float(*p.WeightKG)
	}
	if p.Pieces != nil {
		r.Pieces = Int(*p.Pieces)
	}
	if p.GoodsValue != nil {
		r.GoodsValue = Float(*p.GoodsValue)
	}
	if p.CBM != nil {
		r.CBM = Float(*p.CBM)
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
}

// IsEmpty reports whether the patch would change nothing.
func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
