// Package xmlfeed serializes canonical export records into the Retino XML
// feed document.
//
// The element names are exactly the record field names of the consumer's
// schema, case preserved. Null values render as empty elements (never omitted
// ones), and numbers use plain decimal text with no locale separators, so a
// schema-aware consumer can read the same structure back out.
package xmlfeed

import (
	"encoding/xml"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shopera/retino-feed/internal/retino/export"
)

const header = `<?xml version="1.0" encoding="UTF-8"?>`

// Renderer produces the feed document for a batch of export records.
type Renderer struct{}

// Render serializes the batch into a complete, well-formed XML document.
// An empty batch yields a valid document with an empty ORDERS root.
func (Renderer) Render(records []export.Record) (string, error) {
	w := &docWriter{}
	w.raw(header)

	w.open("ORDERS")
	for i := range records {
		w.open("ORDER")
		writeOrder(w, &records[i])
		w.close("ORDER")
	}
	w.close("ORDERS")

	return w.String(), nil
}

func writeOrder(w *docWriter, record *export.Record) {
	w.text("ORDER_ID", record.OrderID)
	w.text("CODE", record.Code)
	w.nullableText("INVOICE_CODE", record.InvoiceCode)
	w.text("DATE", record.Date)

	w.open("CURRENCY")
	w.text("CODE", record.Currency.Code)
	w.close("CURRENCY")

	w.nullableText("PACKAGE_NUMBER", record.PackageNumber)
	writeCustomer(w, &record.Customer)
	writeTotalPrice(w, record.TotalPrice)

	w.open("ORDER_ITEMS")
	for i := range record.Items {
		w.open("ITEM")
		writeItem(w, &record.Items[i])
		w.close("ITEM")
	}
	w.close("ORDER_ITEMS")
}

func writeCustomer(w *docWriter, customer *export.CustomerRecord) {
	w.open("CUSTOMER")
	w.text("EMAIL", customer.Email)
	w.nullableText("PHONE", customer.Phone)

	w.open("BILLING_ADDRESS")
	writeAddress(w, &customer.BillingAddress)
	w.close("BILLING_ADDRESS")

	w.open("SHIPPING_ADDRESS")
	writeAddress(w, &customer.ShippingAddress)
	w.close("SHIPPING_ADDRESS")

	w.close("CUSTOMER")
}

func writeAddress(w *docWriter, address *export.AddressRecord) {
	w.text("NAME", address.Name)
	w.nullableText("COMPANY", address.Company)
	w.text("STREET", address.Street)
	w.nullableText("HOUSENUMBER", address.HouseNumber)
	w.text("CITY", address.City)
	w.text("ZIP", address.Zip)
	w.text("COUNTRY", address.Country)
	w.nullableText("COMPANY_ID", address.CompanyID)
	w.nullableText("VAT_ID", address.VatID)
}

func writeItem(w *docWriter, item *export.ItemRecord) {
	w.text("TYPE", item.Type)
	w.text("NAME", item.Name)
	w.text("CODE", item.Code)
	w.nullableText("VARIANT_NAME", item.VariantName)
	w.nullableText("MANUFACTURER", item.Manufacturer)
	w.number("AMOUNT", item.Amount)
	w.text("UNIT", item.Unit)
	w.nullableNumber("WEIGHT", item.Weight)

	w.open("UNIT_PRICE")
	writeBreakdown(w, item.UnitPrice)
	w.close("UNIT_PRICE")

	w.open("TOTAL_PRICE")
	writeBreakdown(w, item.TotalPrice)
	w.close("TOTAL_PRICE")
}

// writeBreakdown emits the four VAT fields together or only WITHOUT_VAT,
// never a partial set.
func writeBreakdown(w *docWriter, price export.PriceBreakdown) {
	if !price.HasVAT {
		w.number("WITHOUT_VAT", price.WithoutVAT)
		return
	}
	w.number("WITH_VAT", price.WithVAT)
	w.number("WITHOUT_VAT", price.WithoutVAT)
	w.number("VAT", price.VAT)
	w.number("VAT_RATE", price.VATRate)
}

func writeTotalPrice(w *docWriter, total export.TotalPrice) {
	w.open("TOTAL_PRICE")
	w.number("WITH_VAT", total.WithVAT)
	w.number("WITHOUT_VAT", total.WithoutVAT)
	w.number("VAT", total.VAT)
	w.number("ROUNDING", total.Rounding)
	w.close("TOTAL_PRICE")
}

// docWriter is a minimal element writer over a strings.Builder. The feed
// schema is fixed, so there is no need for a generic marshaller; what matters
// is that nil values become empty elements and numbers stay locale-free.
type docWriter struct {
	strings.Builder
}

func (w *docWriter) raw(s string) {
	w.WriteString(s)
}

func (w *docWriter) open(name string) {
	w.WriteString("<")
	w.WriteString(name)
	w.WriteString(">")
}

func (w *docWriter) close(name string) {
	w.WriteString("</")
	w.WriteString(name)
	w.WriteString(">")
}

func (w *docWriter) text(name, value string) {
	w.open(name)
	// EscapeText on a strings.Builder cannot fail.
	_ = xml.EscapeText(w, []byte(value))
	w.close(name)
}

// nullableText renders nil as an empty element, keeping the element present
// for schema stability.
func (w *docWriter) nullableText(name string, value *string) {
	if value == nil {
		w.open(name)
		w.close(name)
		return
	}
	w.text(name, *value)
}

// number renders a float as plain decimal text: no exponent notation, no
// locale separators, shortest representation that round-trips.
func (w *docWriter) number(name string, value float64) {
	w.open(name)
	w.WriteString(decimal.NewFromFloat(value).String())
	w.close(name)
}

func (w *docWriter) nullableNumber(name string, value *float64) {
	if value == nil {
		w.open(name)
		w.close(name)
		return
	}
	w.number(name, *value)
}
