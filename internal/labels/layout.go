package labels

import (
	"fmt"
	"image"

	"ledger/internal/shipment"
)

// Content holds the fixed text printed on every page.
type Content struct {
	Title            string
	Caption          string
	AddressSeparator string
}

// Row is one label/value pair of the text block.
type Row struct {
	Label string
	Value string
}

// Artwork carries the images synthesized for one page. When Err is set the
// image section of the page is omitted.
type Artwork struct {
	Payload string
	Barcode image.Image
	QR      image.Image
	Err     error
}

// Layout draws one shipment record onto the current page of a canvas.
type Layout struct {
	Geometry Geometry
	Content  Content
}

// Rows returns the text rows for rec in page order.
func (l Layout) Rows(rec shipment.Record) []Row {
	return []Row{
		{"House Bill Number", rec.HouseBillNumber},
		{"Consignee Name", rec.ConsigneeName},
		{"Consignee Address", rec.ConsigneeAddress(l.Content.AddressSeparator)},
		{"Consignee City", rec.ConsigneeCity},
		{"Consignee Postcode", rec.ConsigneePostcode},
		{"Consignee State", rec.ConsigneeState},
		{"Consignee Country", rec.ConsigneeCountryCode},
		{"Consignee Phone", rec.ConsigneePhone},
		{"Weight In KG", shipment.Text(rec.WeightKG)},
		{"Pieces", shipment.Text(rec.Pieces)},
		{"Goods Value", rec.GoodsValueText()},
		{"CBM", shipment.Text(rec.CBM)},
		{"Container Number", rec.ContainerNumber},
	}
}

// Draw lays out rec on the current page. Text rows and the border are always
// drawn; the barcode, QR image and caption only when art carries no error.
func (l Layout) Draw(c Canvas, rec shipment.Record, art Artwork) error {
	g := l.Geometry
	x, y := g.Margin, g.Margin

	if err := c.Rect(x, y, g.LabelWidth(), g.LabelHeight, g.BorderStroke); err != nil {
		return fmt.Errorf("draw border: %w", err)
	}

	if err := c.SetFont(FontBold, g.BodyFontSize); err != nil {
		return err
	}
	if err := c.Text(g.CenterX(), y+g.TitleOffset, l.Content.Title, AlignCenter); err != nil {
		return fmt.Errorf("draw title: %w", err)
	}

	if err := c.SetFont(FontRegular, g.BodyFontSize); err != nil {
		return err
	}
	rowY := y + g.FirstRowOffset
	rows := l.Rows(rec)
	for i, row := range rows {
		if err := c.Text(x+g.LabelColumn, rowY, row.Label+":", AlignLeft); err != nil {
			return fmt.Errorf("draw %s label: %w", row.Label, err)
		}
		if err := c.Text(x+g.ValueColumn, rowY, row.Value, AlignLeft); err != nil {
			return fmt.Errorf("draw %s value: %w", row.Label, err)
		}
		if i < len(rows)-1 {
			rowY += g.LinePitch
		}
	}

	if art.Err != nil || art.Barcode == nil || art.QR == nil {
		return nil
	}

	imageY := rowY + g.LinePitch + g.BarcodeGap - g.BarcodeLift
	if err := c.Image(art.Barcode, g.CenterX()-g.BarcodeWidth/2, imageY, g.BarcodeWidth, g.BarcodeHeight); err != nil {
		return fmt.Errorf("draw barcode: %w", err)
	}
	imageY += g.BarcodeLift + g.BarcodeHeight + g.ImageGap
	if err := c.Image(art.QR, g.CenterX()-g.QRSize/2, imageY, g.QRSize, g.QRSize); err != nil {
		return fmt.Errorf("draw qr: %w", err)
	}
	imageY += g.QRSize + g.ImageGap

	if err := c.SetFont(FontRegular, g.CaptionFontSize); err != nil {
		return err
	}
	if err := c.Text(g.CenterX(), imageY, l.Content.Caption, AlignCenter); err != nil {
		return fmt.Errorf("draw caption: %w", err)
	}
	return nil
}
