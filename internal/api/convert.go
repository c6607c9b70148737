package api

import (
	"fmt"
	"strings"

	"ledger/internal/importer"
	"ledger/internal/labels"
	"ledger/internal/services"
	"ledger/internal/shipment"
)

// FromRecord converts a stored record to its API representation.
func FromRecord(rec shipment.Record) Shipment {
	dto := Shipment{
		ID: rec.ID,
		ShipmentFields: ShipmentFields{
			HouseBillNumber:       rec.HouseBillNumber,
			HouseBillReference:    rec.HouseBillReference,
			ShipperName:           rec.ShipperName,
			ShipperAddress1:       rec.ShipperAddress1,
			ShipperAddress2:       rec.ShipperAddress2,
			ShipperCity:           rec.ShipperCity,
			ShipperState:          rec.ShipperState,
			ShipperCountryCode:    rec.ShipperCountryCode,
			ShipperPostcode:       rec.ShipperPostcode,
			ConsigneeName:         rec.ConsigneeName,
			ConsigneeAddress1:     rec.ConsigneeAddress1,
			ConsigneeAddress2:     rec.ConsigneeAddress2,
			ConsigneeCity:         rec.ConsigneeCity,
			ConsigneePostcode:     rec.ConsigneePostcode,
			ConsigneeState:        rec.ConsigneeState,
			ConsigneeCountryCode:  rec.ConsigneeCountryCode,
			ConsigneePhone:        rec.ConsigneePhone,
			DeliveryInstructions:  rec.DeliveryInstructions,
			GoodsDescription:      rec.GoodsDescription,
			WeightKG:              rec.WeightKG,
			Pieces:                rec.Pieces,
			PackType:              rec.PackType,
			GoodsValue:            rec.GoodsValue,
			Currency:              rec.Currency,
			CBM:                   rec.CBM,
			SACYN:                 rec.SACYN,
			MerchantARNABN:        rec.MerchantARNABN,
			PurchaserABN:          rec.PurchaserABN,
			ContainerNumber:       rec.ContainerNumber,
			Status:                string(rec.Status),
			CurrentLocation:       rec.CurrentLocation,
			TrackingNumber:        rec.TrackingNumber,
			EstimatedDeliveryDate: rec.EstimatedDeliveryDate,
			ActualDeliveryDate:    rec.ActualDeliveryDate,
			Notes:                 rec.Notes,
		},
		StatusLabel: rec.Status.Label(),
	}
	if !rec.CreatedAt.IsZero() {
		dto.CreatedAt = rec.CreatedAt.UTC().Format(dateTimeFormat)
	}
	if !rec.UpdatedAt.IsZero() {
		dto.UpdatedAt = rec.UpdatedAt.UTC().Format(dateTimeFormat)
	}
	return dto
}

// FromRecords converts a slice of records.
func FromRecords(recs []shipment.Record) []Shipment {
	out := make([]Shipment, 0, len(recs))
	for _, rec := range recs {
		out = append(out, FromRecord(rec))
	}
	return out
}

// ToRecord converts request fields to a record, validating the status.
func ToRecord(fields ShipmentFields) (shipment.Record, error) {
	status, err := parseOptionalStatus(fields.Status)
	if err != nil {
		return shipment.Record{}, err
	}
	return shipment.Record{
		HouseBillNumber:       strings.TrimSpace(fields.HouseBillNumber),
		HouseBillReference:    fields.HouseBillReference,
		ShipperName:           fields.ShipperName,
		ShipperAddress1:       fields.ShipperAddress1,
		ShipperAddress2:       fields.ShipperAddress2,
		ShipperCity:           fields.ShipperCity,
		ShipperState:          fields.ShipperState,
		ShipperCountryCode:    fields.ShipperCountryCode,
		ShipperPostcode:       fields.ShipperPostcode,
		ConsigneeName:         fields.ConsigneeName,
		ConsigneeAddress1:     fields.ConsigneeAddress1,
		ConsigneeAddress2:     fields.ConsigneeAddress2,
		ConsigneeCity:         fields.ConsigneeCity,
		ConsigneePostcode:     fields.ConsigneePostcode,
		ConsigneeState:        fields.ConsigneeState,
		ConsigneeCountryCode:  fields.ConsigneeCountryCode,
		ConsigneePhone:        fields.ConsigneePhone,
		DeliveryInstructions:  fields.DeliveryInstructions,
		GoodsDescription:      fields.GoodsDescription,
		WeightKG:              fields.WeightKG,
		Pieces:                fields.Pieces,
		PackType:              fields.PackType,
		GoodsValue:            fields.GoodsValue,
		Currency:              fields.Currency,
		CBM:                   fields.CBM,
		SACYN:                 fields.SACYN,
		MerchantARNABN:        fields.MerchantARNABN,
		PurchaserABN:          fields.PurchaserABN,
		ContainerNumber:       fields.ContainerNumber,
		Status:                status,
		CurrentLocation:       fields.CurrentLocation,
		TrackingNumber:        fields.TrackingNumber,
		EstimatedDeliveryDate: fields.EstimatedDeliveryDate,
		ActualDeliveryDate:    fields.ActualDeliveryDate,
		Notes:                 fields.Notes,
	}, nil
}

// ToPatch converts a bulk edit request, validating the status.
func ToPatch(p ShipmentPatch) (shipment.Patch, error) {
	patch := shipment.Patch{
		HouseBillReference:    p.HouseBillReference,
		ShipperName:           p.ShipperName,
		ShipperAddress1:       p.ShipperAddress1,
		ShipperAddress2:       p.ShipperAddress2,
		ShipperCity:           p.ShipperCity,
		ShipperState:          p.ShipperState,
		ShipperCountryCode:    p.ShipperCountryCode,
		ShipperPostcode:       p.ShipperPostcode,
		ConsigneeName:         p.ConsigneeName,
		ConsigneeAddress1:     p.ConsigneeAddress1,
		ConsigneeAddress2:     p.ConsigneeAddress2,
		ConsigneeCity:         p.ConsigneeCity,
		ConsigneePostcode:     p.ConsigneePostcode,
		ConsigneeState:        p.ConsigneeState,
		ConsigneeCountryCode:  p.ConsigneeCountryCode,
		ConsigneePhone:        p.ConsigneePhone,
		DeliveryInstructions:  p.DeliveryInstructions,
		GoodsDescription:      p.GoodsDescription,
		WeightKG:              p.WeightKG,
		Pieces:                p.Pieces,
		PackType:              p.PackType,
		GoodsValue:            p.GoodsValue,
		Currency:              p.Currency,
		CBM:                   p.CBM,
		SACYN:                 p.SACYN,
		MerchantARNABN:        p.MerchantARNABN,
		PurchaserABN:          p.PurchaserABN,
		ContainerNumber:       p.ContainerNumber,
		CurrentLocation:       p.CurrentLocation,
		TrackingNumber:        p.TrackingNumber,
		EstimatedDeliveryDate: p.EstimatedDeliveryDate,
		ActualDeliveryDate:    p.ActualDeliveryDate,
		Notes:                 p.Notes,
	}
	if p.Status != nil {
		status, ok := shipment.ParseStatus(*p.Status)
		if !ok {
			return shipment.Patch{}, invalidStatus(*p.Status)
		}
		patch.Status = &status
	}
	return patch, nil
}

// ParseStatuses converts status filter strings, rejecting unknown values.
func ParseStatuses(values []string) ([]shipment.Status, error) {
	var out []shipment.Status
	for _, raw := range values {
		for _, part := range strings.Split(raw, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			status, ok := shipment.ParseStatus(part)
			if !ok {
				return nil, invalidStatus(part)
			}
			out = append(out, status)
		}
	}
	return out, nil
}

// MergeStats fills every known status so clients always see all counts.
func MergeStats(stats map[shipment.Status]int) StatsResponse {
	resp := StatsResponse{Counts: make(map[string]int, len(stats))}
	for _, status := range shipment.AllStatuses() {
		resp.Counts[string(status)] = 0
	}
	for status, count := range stats {
		resp.Counts[string(status)] += count
		resp.Total += count
	}
	return resp
}

// FromImportResult converts importer issues for transport.
func FromImportResult(result *importer.Result, ids []string) ImportResponse {
	resp := ImportResponse{IDs: ids}
	if result == nil {
		return resp
	}
	resp.Imported = len(ids)
	resp.Skipped = result.Skipped
	for _, issue := range result.Issues {
		resp.Issues = append(resp.Issues, ImportIssue{
			Row:     issue.Row,
			Column:  issue.Column,
			Value:   issue.Value,
			Message: issue.Message,
		})
	}
	return resp
}

// FromDelivery summarizes a generated label document.
func FromDelivery(delivery *labels.Delivery) LabelResponse {
	if delivery == nil || delivery.Artifact == nil {
		return LabelResponse{}
	}
	art := delivery.Artifact
	resp := LabelResponse{
		Filename:    art.Filename,
		Location:    delivery.Location,
		Pages:       art.Pages,
		Degraded:    art.Degraded(),
		Bytes:       art.Size(),
		GeneratedAt: art.GeneratedAt.UTC().Format(dateTimeFormat),
		Outcomes:    make([]PageOutcome, 0, len(art.Outcomes)),
	}
	for _, outcome := range art.Outcomes {
		page := PageOutcome{
			Page:            outcome.Index + 1,
			ID:              outcome.RecordID,
			HouseBillNumber: outcome.HouseBillNumber,
			Payload:         outcome.Payload,
		}
		if outcome.Err != nil {
			page.Error = outcome.Err.Error()
		}
		resp.Outcomes = append(resp.Outcomes, page)
	}
	return resp
}

// ErrorBody builds the error payload for err.
func ErrorBody(err error) ErrorResponse {
	return ErrorResponse{Error: err.Error(), Kind: services.Kind(err)}
}

func parseOptionalStatus(value string) (shipment.Status, error) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	status, ok := shipment.ParseStatus(value)
	if !ok {
		return "", invalidStatus(value)
	}
	return status, nil
}

func invalidStatus(value string) error {
	return services.Wrap(services.ErrValidation, "api", "parse status", fmt.Sprintf("unknown status %q", value), nil)
}
