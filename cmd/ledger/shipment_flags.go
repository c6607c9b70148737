package main

import (
	"github.com/spf13/cobra"

	"ledger/internal/api"
)

// shipmentFlags binds the editable shipment fields to command flags. Add
// uses every value; edit only sends the flags the user actually set.
type shipmentFlags struct {
	houseBill, reference                                                                  string
	shipperName, shipperAddress1, shipperAddress2, shipperCity, shipperState              string
	shipperCountry, shipperPostcode                                                       string
	consigneeName, consigneeAddress1, consigneeAddress2, consigneeCity, consigneePostcode string
	consigneeState, consigneeCountry, consigneePhone                                      string
	instructions, description, packType, currency, sac, merchant, purchaser, container    string
	status, location, tracking, eta, delivered, notes                                     string
	weight, value, cbm                                                                    float64
	pieces                                                                                int
}

func (f *shipmentFlags) register(cmd *cobra.Command, withHouseBill bool) {
	fs := cmd.Flags()
	if withHouseBill {
		fs.StringVar(&f.houseBill, "house-bill", "", "House bill number")
	}
	fs.StringVar(&f.reference, "reference", "", "House bill reference")
	fs.StringVar(&f.shipperName, "shipper", "", "Shipper name")
	fs.StringVar(&f.shipperAddress1, "shipper-address1", "", "Shipper address line 1")
	fs.StringVar(&f.shipperAddress2, "shipper-address2", "", "Shipper address line 2")
	fs.StringVar(&f.shipperCity, "shipper-city", "", "Shipper city")
	fs.StringVar(&f.shipperState, "shipper-state", "", "Shipper state")
	fs.StringVar(&f.shipperCountry, "shipper-country", "", "Shipper country code")
	fs.StringVar(&f.shipperPostcode, "shipper-postcode", "", "Shipper postcode")
	fs.StringVar(&f.consigneeName, "consignee", "", "Consignee name")
	fs.StringVar(&f.consigneeAddress1, "address1", "", "Consignee address line 1")
	fs.StringVar(&f.consigneeAddress2, "address2", "", "Consignee address line 2")
	fs.StringVar(&f.consigneeCity, "city", "", "Consignee city")
	fs.StringVar(&f.consigneePostcode, "postcode", "", "Consignee postcode")
	fs.StringVar(&f.consigneeState, "state", "", "Consignee state")
	fs.StringVar(&f.consigneeCountry, "country", "", "Consignee country code")
	fs.StringVar(&f.consigneePhone, "phone", "", "Consignee phone")
	fs.StringVar(&f.instructions, "instructions", "", "Delivery instructions")
	fs.StringVar(&f.description, "description", "", "Goods description")
	fs.Float64Var(&f.weight, "weight", 0, "Weight in kg")
	fs.IntVar(&f.pieces, "pieces", 0, "Number of pieces")
	fs.StringVar(&f.packType, "pack-type", "", "Pack type")
	fs.Float64Var(&f.value, "value", 0, "Goods value")
	fs.StringVar(&f.currency, "currency", "", "Goods value currency")
	fs.Float64Var(&f.cbm, "cbm", 0, "Volume in cubic metres")
	fs.StringVar(&f.sac, "sac", "", "SAC Y/N")
	fs.StringVar(&f.merchant, "merchant-abn", "", "Merchant ARN/ABN")
	fs.StringVar(&f.purchaser, "purchaser-abn", "", "Purchaser ABN")
	fs.StringVar(&f.container, "container", "", "Container number")
	fs.StringVar(&f.status, "status", "", "Status (pending, in_transit, delivered, cancelled)")
	fs.StringVar(&f.location, "location", "", "Current location")
	fs.StringVar(&f.tracking, "tracking", "", "Tracking number")
	fs.StringVar(&f.eta, "eta", "", "Estimated delivery date")
	fs.StringVar(&f.delivered, "delivered-on", "", "Actual delivery date")
	fs.StringVar(&f.notes, "notes", "", "Notes")
}

// fields builds a full record. Numeric flags left unset stay missing.
func (f *shipmentFlags) fields(cmd *cobra.Command) api.ShipmentFields {
	fs := cmd.Flags()
	out := api.ShipmentFields{
		HouseBillNumber:       f.houseBill,
		HouseBillReference:    f.reference,
		ShipperName:           f.shipperName,
		ShipperAddress1:       f.shipperAddress1,
		ShipperAddress2:       f.shipperAddress2,
		ShipperCity:           f.shipperCity,
		ShipperState:          f.shipperState,
		ShipperCountryCode:    f.shipperCountry,
		ShipperPostcode:       f.shipperPostcode,
		ConsigneeName:         f.consigneeName,
		ConsigneeAddress1:     f.consigneeAddress1,
		ConsigneeAddress2:     f.consigneeAddress2,
		ConsigneeCity:         f.consigneeCity,
		ConsigneePostcode:     f.consigneePostcode,
		ConsigneeState:        f.consigneeState,
		ConsigneeCountryCode:  f.consigneeCountry,
		ConsigneePhone:        f.consigneePhone,
		DeliveryInstructions:  f.instructions,
		GoodsDescription:      f.description,
		PackType:              f.packType,
		Currency:              f.currency,
		SACYN:                 f.sac,
		MerchantARNABN:        f.merchant,
		PurchaserABN:          f.purchaser,
		ContainerNumber:       f.container,
		Status:                f.status,
		CurrentLocation:       f.location,
		TrackingNumber:        f.tracking,
		EstimatedDeliveryDate: f.eta,
		ActualDeliveryDate:    f.delivered,
		Notes:                 f.notes,
	}
	if fs.Changed("weight") {
		out.WeightKG = &f.weight
	}
	if fs.Changed("pieces") {
		out.Pieces = &f.pieces
	}
	if fs.Changed("value") {
		out.GoodsValue = &f.value
	}
	if fs.Changed("cbm") {
		out.CBM = &f.cbm
	}
	return out
}

// patch returns only the fields whose flags were set on the command line.
func (f *shipmentFlags) patch(cmd *cobra.Command) api.ShipmentPatch {
	fs := cmd.Flags()
	var p api.ShipmentPatch
	str := func(name string, value *string) *string {
		if fs.Changed(name) {
			return value
		}
		return nil
	}
	p.HouseBillReference = str("reference", &f.reference)
	p.ShipperName = str("shipper", &f.shipperName)
	p.ShipperAddress1 = str("shipper-address1", &f.shipperAddress1)
	p.ShipperAddress2 = str("shipper-address2", &f.shipperAddress2)
	p.ShipperCity = str("shipper-city", &f.shipperCity)
	p.ShipperState = str("shipper-state", &f.shipperState)
	p.ShipperCountryCode = str("shipper-country", &f.shipperCountry)
	p.ShipperPostcode = str("shipper-postcode", &f.shipperPostcode)
	p.ConsigneeName = str("consignee", &f.consigneeName)
	p.ConsigneeAddress1 = str("address1", &f.consigneeAddress1)
	p.ConsigneeAddress2 = str("address2", &f.consigneeAddress2)
	p.ConsigneeCity = str("city", &f.consigneeCity)
	p.ConsigneePostcode = str("postcode", &f.consigneePostcode)
	p.ConsigneeState = str("state", &f.consigneeState)
	p.ConsigneeCountryCode = str("country", &f.consigneeCountry)
	p.ConsigneePhone = str("phone", &f.consigneePhone)
	p.DeliveryInstructions = str("instructions", &f.instructions)
	p.GoodsDescription = str("description", &f.description)
	p.PackType = str("pack-type", &f.packType)
	p.Currency = str("currency", &f.currency)
	p.SACYN = str("sac", &f.sac)
	p.MerchantARNABN = str("merchant-abn", &f.merchant)
	p.PurchaserABN = str("purchaser-abn", &f.purchaser)
	p.ContainerNumber = str("container", &f.container)
	p.Status = str("status", &f.status)
	p.CurrentLocation = str("location", &f.location)
	p.TrackingNumber = str("tracking", &f.tracking)
	p.EstimatedDeliveryDate = str("eta", &f.eta)
	p.ActualDeliveryDate = str("delivered-on", &f.delivered)
	p.Notes = str("notes", &f.notes)
	if fs.Changed("weight") {
		p.WeightKG = &f.weight
	}
	if fs.Changed("pieces") {
		p.Pieces = &f.pieces
	}
	if fs.Changed("value") {
		p.GoodsValue = &f.value
	}
	if fs.Changed("cbm") {
		p.CBM = &f.cbm
	}
	return p
}
