package store

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"ledger/internal/shipment"
)

// Order matches recordArgs and scanRecord.
var recordColumnList = []string{
	"house_bill_number", "house_bill_reference",
	"shipper_name", "shipper_address1", "shipper_address2", "shipper_city",
	"shipper_state", "shipper_country_code", "shipper_postcode",
	"consignee_name", "consignee_address1", "consignee_address2", "consignee_city",
	"consignee_postcode", "consignee_state", "consignee_country_code", "consignee_phone",
	"delivery_instructions", "goods_description", "weight_in_kg", "pieces", "pack_type",
	"goods_value", "currency", "cbm", "sac_yn", "merchant_arn_abn", "purchaser_abn",
	"container_number", "status", "current_location", "tracking_number",
	"estimated_delivery_date", "actual_delivery_date", "notes",
}

var (
	recordColumns = "id, " + strings.Join(recordColumnList, ", ") + ", created_at, updated_at"
	insertSQL     = `INSERT INTO shipments (` + recordColumns + `) VALUES (` + makePlaceholders(len(recordColumnList)+3) + `)`
	updateSQL     = `UPDATE shipments SET ` + strings.Join(recordColumnList, " = ?, ") + ` = ?, updated_at = ? WHERE id = ?`
)

func recordArgs(r *shipment.Record) []any {
	return []any{
		r.HouseBillNumber,
		nullableString(r.HouseBillReference),
		nullableString(r.ShipperName),
		nullableString(r.ShipperAddress1),
		nullableString(r.ShipperAddress2),
		nullableString(r.ShipperCity),
		nullableString(r.ShipperState),
		nullableString(r.ShipperCountryCode),
		nullableString(r.ShipperPostcode),
		nullableString(r.ConsigneeName),
		nullableString(r.ConsigneeAddress1),
		nullableString(r.ConsigneeAddress2),
		nullableString(r.ConsigneeCity),
		nullableString(r.ConsigneePostcode),
		nullableString(r.ConsigneeState),
		nullableString(r.ConsigneeCountryCode),
		nullableString(r.ConsigneePhone),
		nullableString(r.DeliveryInstructions),
		nullableString(r.GoodsDescription),
		nullableFloat(r.WeightKG),
		nullableInt(r.Pieces),
		nullableString(r.PackType),
		nullableFloat(r.GoodsValue),
		nullableString(r.Currency),
		nullableFloat(r.CBM),
		nullableString(r.SACYN),
		nullableString(r.MerchantARNABN),
		nullableString(r.PurchaserABN),
		nullableString(r.ContainerNumber),
		string(r.Status),
		nullableString(r.CurrentLocation),
		nullableString(r.TrackingNumber),
		nullableString(r.EstimatedDeliveryDate),
		nullableString(r.ActualDeliveryDate),
		nullableString(r.Notes),
	}
}

func scanRecord(scanner interface{ Scan(dest ...any) error }) (*shipment.Record, error) {
	var (
		id                                                   string
		houseBill, statusStr                                 string
		hbRef, shipName, shipA1, shipA2, shipCity, shipState sql.NullString
		shipCountry, shipPost                                sql.NullString
		conName, conA1, conA2, conCity, conPost, conState    sql.NullString
		conCountry, conPhone, instructions, description      sql.NullString
		weight, goodsValue, cbm                              sql.NullFloat64
		pieces                                               sql.NullInt64
		packType, currency, sac, merchant, purchaser         sql.NullString
		container, location, tracking, eta, delivered, notes sql.NullString
		createdRaw, updatedRaw                               sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&houseBill, &hbRef,
		&shipName, &shipA1, &shipA2, &shipCity, &shipState, &shipCountry, &shipPost,
		&conName, &conA1, &conA2, &conCity, &conPost, &conState, &conCountry, &conPhone,
		&instructions, &description, &weight, &pieces, &packType,
		&goodsValue, &currency, &cbm, &sac, &merchant, &purchaser,
		&container, &statusStr, &location, &tracking,
		&eta, &delivered, &notes,
		&createdRaw, &updatedRaw,
	); err != nil {
		return nil, err
	}

	rec := &shipment.Record{
		ID:                    id,
		HouseBillNumber:       houseBill,
		HouseBillReference:    hbRef.String,
		ShipperName:           shipName.String,
		ShipperAddress1:       shipA1.String,
		ShipperAddress2:       shipA2.String,
		ShipperCity:           shipCity.String,
		ShipperState:          shipState.String,
		ShipperCountryCode:    shipCountry.String,
		ShipperPostcode:       shipPost.String,
		ConsigneeName:         conName.String,
		ConsigneeAddress1:     conA1.String,
		ConsigneeAddress2:     conA2.String,
		ConsigneeCity:         conCity.String,
		ConsigneePostcode:     conPost.String,
		ConsigneeState:        conState.String,
		ConsigneeCountryCode:  conCountry.String,
		ConsigneePhone:        conPhone.String,
		DeliveryInstructions:  instructions.String,
		GoodsDescription:      description.String,
		PackType:              packType.String,
		Currency:              currency.String,
		SACYN:                 sac.String,
		MerchantARNABN:        merchant.String,
		PurchaserABN:          purchaser.String,
		ContainerNumber:       container.String,
		Status:                shipment.Status(statusStr),
		CurrentLocation:       location.String,
		TrackingNumber:        tracking.String,
		EstimatedDeliveryDate: eta.String,
		ActualDeliveryDate:    delivered.String,
		Notes:                 notes.String,
	}
	if weight.Valid {
		rec.WeightKG = shipment.Float(weight.Float64)
	}
	if pieces.Valid {
		rec.Pieces = shipment.Int(int(pieces.Int64))
	}
	if goodsValue.Valid {
		rec.GoodsValue = shipment.Float(goodsValue.Float64)
	}
	if cbm.Valid {
		rec.CBM = shipment.Float(cbm.Float64)
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		rec.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		rec.UpdatedAt = updated
	}
	return rec, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableFloat(value *float64) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableInt(value *int) any {
	if value == nil {
		return nil
	}
	return int64(*value)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", count), ",")
}

func stringArgs(values []string) []any {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}
