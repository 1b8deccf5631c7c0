// Package export hydrates domain orders into the canonical Retino export
// records. The record shapes are fixed by the downstream consumer: element
// names, their order and which of them may be null are all part of the
// contract, independent of the wire encoding.
package export

// Record is the canonical export form of one order.
type Record struct {
	OrderID       string
	Code          string
	InvoiceCode   *string
	Date          string
	Currency      Currency
	PackageNumber *string
	Customer      CustomerRecord
	TotalPrice    TotalPrice
	// Items preserves the order of the domain line items.
	Items []ItemRecord
}

type Currency struct {
	Code string
}

type CustomerRecord struct {
	Email           string
	Phone           *string
	BillingAddress  AddressRecord
	ShippingAddress AddressRecord
}

// AddressRecord maps a domain address onto the consumer's schema.
// HouseNumber is always nil: the upstream model does not split it out of the
// street line, and the consumer requires the element to stay present for
// schema stability.
type AddressRecord struct {
	Name        string
	Company     *string
	Street      string
	HouseNumber *string
	City        string
	Zip         string
	Country     string
	CompanyID   *string
	VatID       *string
}

type ItemRecord struct {
	Type         string
	Name         string
	Code         string
	VariantName  *string
	Manufacturer *string
	Amount       float64
	Unit         string
	Weight       *float64
	UnitPrice    PriceBreakdown
	TotalPrice   PriceBreakdown
}

// PriceBreakdown is a monetary amount optionally decomposed into
// VAT-exclusive and VAT-inclusive components. WithoutVAT is always set.
// WithVAT, VAT and VATRate are emitted together, and only when HasVAT is
// true.
type PriceBreakdown struct {
	WithoutVAT float64
	WithVAT    float64
	VAT        float64
	VATRate    float64
	HasVAT     bool
}

// TotalPrice is the order-level breakdown. Unlike PriceBreakdown all fields
// are always emitted. Rounding is reserved for currency-rounding adjustments
// and is currently always 0.
type TotalPrice struct {
	WithVAT    float64
	WithoutVAT float64
	VAT        float64
	Rounding   float64
}
