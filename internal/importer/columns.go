package importer

import (
	"strconv"
	"strings"

	"ledger/internal/shipment"
)

type setter func(rec *shipment.Record, value string) error

func text(field func(*shipment.Record) *string) setter {
	return func(rec *shipment.Record, value string) error {
		*field(rec) = value
		return nil
	}
}

func decimal(field func(*shipment.Record) **float64) setter {
	return func(rec *shipment.Record, value string) error {
		f, err := parseNumber(value)
		if err != nil {
			*field(rec) = shipment.Float(0)
			return err
		}
		*field(rec) = shipment.Float(f)
		return nil
	}
}

func count(field func(*shipment.Record) **int) setter {
	return func(rec *shipment.Record, value string) error {
		f, err := parseNumber(value)
		if err != nil {
			*field(rec) = shipment.Int(0)
			return err
		}
		*field(rec) = shipment.Int(int(f))
		return nil
	}
}

// columns maps normalized header names to record fields.
var columns = map[string]setter{
	"house bill number":      text(func(r *shipment.Record) *string { return &r.HouseBillNumber }),
	"house bill reference":   text(func(r *shipment.Record) *string { return &r.HouseBillReference }),
	"shipper name":           text(func(r *shipment.Record) *string { return &r.ShipperName }),
	"shipper address 1":      text(func(r *shipment.Record) *string { return &r.ShipperAddress1 }),
	"shipper address 2":      text(func(r *shipment.Record) *string { return &r.ShipperAddress2 }),
	"shipper city":           text(func(r *shipment.Record) *string { return &r.ShipperCity }),
	"shipper state":          text(func(r *shipment.Record) *string { return &r.ShipperState }),
	"shipper country code":   text(func(r *shipment.Record) *string { return &r.ShipperCountryCode }),
	"shipper postcode":       text(func(r *shipment.Record) *string { return &r.ShipperPostcode }),
	"consignee name":         text(func(r *shipment.Record) *string { return &r.ConsigneeName }),
	"consignee address 1":    text(func(r *shipment.Record) *string { return &r.ConsigneeAddress1 }),
	"consignee address 2":    text(func(r *shipment.Record) *string { return &r.ConsigneeAddress2 }),
	"consignee city":         text(func(r *shipment.Record) *string { return &r.ConsigneeCity }),
	"consignee postcode":     text(func(r *shipment.Record) *string { return &r.ConsigneePostcode }),
	"consignee state":        text(func(r *shipment.Record) *string { return &r.ConsigneeState }),
	"consignee country code": text(func(r *shipment.Record) *string { return &r.ConsigneeCountryCode }),
	"consignee phone":        text(func(r *shipment.Record) *string { return &r.ConsigneePhone }),
	"delivery instructions":  text(func(r *shipment.Record) *string { return &r.DeliveryInstructions }),
	"goods description":      text(func(r *shipment.Record) *string { return &r.GoodsDescription }),
	"weight in kg":           decimal(func(r *shipment.Record) **float64 { return &r.WeightKG }),
	"pieces":                 count(func(r *shipment.Record) **int { return &r.Pieces }),
	"pack type":              text(func(r *shipment.Record) *string { return &r.PackType }),
	"goods value":            decimal(func(r *shipment.Record) **float64 { return &r.GoodsValue }),
	"currency":               text(func(r *shipment.Record) *string { return &r.Currency }),
	"cbm":                    decimal(func(r *shipment.Record) **float64 { return &r.CBM }),
	"sac y/n":                text(func(r *shipment.Record) *string { return &r.SACYN }),
	"merchant arn/abn":       text(func(r *shipment.Record) *string { return &r.MerchantARNABN }),
	"purchaser abn":          text(func(r *shipment.Record) *string { return &r.PurchaserABN }),
	"container number":       text(func(r *shipment.Record) *string { return &r.ContainerNumber }),
}

func normalizeHeader(header string) string {
	header = strings.TrimPrefix(header, "\ufeff")
	return strings.Join(strings.Fields(strings.ToLower(header)), " ")
}

func parseNumber(value string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
}
