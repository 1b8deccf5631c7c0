// Package domain is the read-only order object model consumed by the feed
// exporter. It mirrors what the surrounding order-management system exposes;
// nothing here is persisted or mutated by this service.
package domain

import "time"

// Item type tags as supplied by the order-management system. Anything else is
// treated as a product during export.
const (
	ItemTypeProduct  = "product"
	ItemTypeDiscount = "discount"
	ItemTypeShipping = "shipping"
	ItemTypeBilling  = "billing"
)

// Order is a single order as handed over by the order-management system.
// Optional sub-objects and nullable scalars are pointers; absence is
// meaningful and resolved explicitly during hydration.
type Order struct {
	ID            int64
	Number        string
	InvoiceNumber *string
	InsertedAt    time.Time
	CurrencyCode  string
	PackageNumber *string
	Customer      *Customer
	// DeliveryAddress is mandatory for export. PaymentAddress falls back to
	// it when nil.
	DeliveryAddress *Address
	PaymentAddress  *Address
	// Price is the order total including VAT.
	Price   float64
	VatRate float64
	Items   []OrderItem
}

// OrderItem is one line of an order. Code is only meaningful when
// ProductBased is true; virtual lines (discount, shipping, billing) get a
// synthesized code during export.
type OrderItem struct {
	ID           int64
	Type         string
	ProductBased bool
	Label        string
	Code         string
	Variant      *Variant
	Manufacturer *Manufacturer
	Amount       float64
	Unit         string
	Weight       *float64
	// FinalPrice is the per-unit price after all adjustments.
	FinalPrice float64
	VatRate    float64
}

type Variant struct {
	Label string
}

type Manufacturer struct {
	Name string
}

type Customer struct {
	Email *string
	Phone *string
}

// Address as modelled by the order-management system. The street field holds
// the full street line; a separate house number does not exist upstream.
type Address struct {
	PersonName  string
	CompanyName *string
	Street      string
	City        string
	Zip         string
	CountryName string
	// CompanyID is the company registration number (CIN), VatID the tax
	// identifier (TIN).
	CompanyID *string
	VatID     *string
}
