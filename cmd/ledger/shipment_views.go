package main

import (
	"strconv"
	"strings"
	"time"

	"ledger/internal/api"
	"ledger/internal/shipment"
)

func buildShipmentListRows(items []api.Shipment) [][]string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.ID,
			item.HouseBillNumber,
			item.ConsigneeName,
			item.ContainerNumber,
			item.StatusLabel,
			formatCreated(item.CreatedAt),
		})
	}
	return rows
}

func formatCreated(value string) string {
	if value == "" {
		return ""
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	return parsed.Local().Format("2006-01-02 15:04")
}

func buildShipmentDetailRows(item api.Shipment) [][]string {
	num := func(v *float64) string { return shipment.Text(v) }
	return [][]string{
		{"ID", item.ID},
		{"House Bill", item.HouseBillNumber},
		{"Reference", item.HouseBillReference},
		{"Shipper", item.ShipperName},
		{"Shipper Address", joinNonEmpty(item.ShipperAddress1, item.ShipperAddress2, item.ShipperCity, item.ShipperState, item.ShipperPostcode, item.ShipperCountryCode)},
		{"Consignee", item.ConsigneeName},
		{"Consignee Address", joinNonEmpty(item.ConsigneeAddress1, item.ConsigneeAddress2, item.ConsigneeCity, item.ConsigneeState, item.ConsigneePostcode, item.ConsigneeCountryCode)},
		{"Phone", item.ConsigneePhone},
		{"Instructions", item.DeliveryInstructions},
		{"Goods", item.GoodsDescription},
		{"Weight (kg)", num(item.WeightKG)},
		{"Pieces", shipment.Text(item.Pieces)},
		{"Pack Type", item.PackType},
		{"Goods Value", num(item.GoodsValue) + " " + item.Currency},
		{"CBM", num(item.CBM)},
		{"SAC Y/N", item.SACYN},
		{"Merchant ARN/ABN", item.MerchantARNABN},
		{"Purchaser ABN", item.PurchaserABN},
		{"Container", item.ContainerNumber},
		{"Status", item.StatusLabel},
		{"Location", item.CurrentLocation},
		{"Tracking", item.TrackingNumber},
		{"ETA", item.EstimatedDeliveryDate},
		{"Delivered", item.ActualDeliveryDate},
		{"Notes", item.Notes},
		{"Created", formatCreated(item.CreatedAt)},
		{"Updated", formatCreated(item.UpdatedAt)},
	}
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, ", ")
}

func buildImportIssueRows(issues []api.ImportIssue) [][]string {
	rows := make([][]string, 0, len(issues))
	for _, issue := range issues {
		rows = append(rows, []string{strconv.Itoa(issue.Row), issue.Column, issue.Value, issue.Message})
	}
	return rows
}

func buildStatsRows(stats api.StatsResponse) [][]string {
	rows := make([][]string, 0, len(stats.Counts)+1)
	for _, status := range shipment.AllStatuses() {
		rows = append(rows, []string{status.Label(), strconv.Itoa(stats.Counts[string(status)])})
	}
	rows = append(rows, []string{"Total", strconv.Itoa(stats.Total)})
	return rows
}
