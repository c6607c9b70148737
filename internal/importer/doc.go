// Package importer reads shipment records from spreadsheets.
//
// The first sheet of an .xlsx/.xlsm workbook, or a .csv file, is read with
// its first row as headers. Headers use the carrier manifest names ("House
// Bill Number", "Consignee Address 1", "Weight In KG", ...); unknown columns
// are ignored. Problems with single cells are reported as RowIssue values
// instead of failing the import.
package importer
