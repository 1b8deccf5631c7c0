package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopera/retino-feed/internal/retino/domain"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func validOrder() *domain.Order {
	return &domain.Order{
		ID:           42,
		Number:       "ORD-42",
		InsertedAt:   time.Date(2024, 1, 15, 10, 30, 0, 0, time.FixedZone("CET", 3600)),
		CurrencyCode: "CZK",
		Customer: &domain.Customer{
			Email: strPtr("a@b.com"),
		},
		DeliveryAddress: &domain.Address{
			PersonName:  "Jan Novak",
			Street:      "Vodickova 12",
			City:        "Prague",
			Zip:         "11000",
			CountryName: "Czech Republic",
		},
		Price:   200,
		VatRate: 21,
		Items: []domain.OrderItem{
			{
				ID:           7,
				Type:         "product",
				ProductBased: true,
				Label:        "Widget",
				Code:         "WGT-1",
				Amount:       2,
				Unit:         "pcs",
				FinalPrice:   100,
				VatRate:      21,
			},
		},
	}
}

func TestHydrateOrder(t *testing.T) {
	record, err := Hydrate(validOrder())
	require.NoError(t, err)

	assert.Equal(t, "42", record.OrderID)
	assert.Equal(t, "ORD-42", record.Code)
	assert.Nil(t, record.InvoiceCode)
	assert.Equal(t, "2024-01-15T10:30:00+01:00", record.Date)
	assert.Equal(t, "CZK", record.Currency.Code)
	assert.Nil(t, record.PackageNumber)
	assert.Equal(t, "a@b.com", record.Customer.Email)
	assert.Nil(t, record.Customer.Phone)

	require.Len(t, record.Items, 1)
	item := record.Items[0]
	assert.Equal(t, "product", item.Type)
	assert.Equal(t, "Widget", item.Name)
	assert.Equal(t, "WGT-1", item.Code)
	assert.Equal(t, 2.0, item.Amount)
	assert.Equal(t, "pcs", item.Unit)

	// Unit price 100 at rate 21: share = 100 − 21 = 79.
	require.True(t, item.UnitPrice.HasVAT)
	assert.InDelta(t, 100.0, item.UnitPrice.WithVAT, 1e-6)
	assert.InDelta(t, 79.0, item.UnitPrice.VAT, 1e-6)
	assert.InDelta(t, 21.0, item.UnitPrice.WithoutVAT, 1e-6)

	// Total price 200 at rate 21: share = 200 − 42 = 158.
	require.True(t, item.TotalPrice.HasVAT)
	assert.InDelta(t, 200.0, item.TotalPrice.WithVAT, 1e-6)
	assert.InDelta(t, 158.0, item.TotalPrice.VAT, 1e-6)
	assert.InDelta(t, 42.0, item.TotalPrice.WithoutVAT, 1e-6)
}

func TestHydrateOrderTotalAccumulatesItemVat(t *testing.T) {
	order := validOrder()
	// One item totalling 100 whose VAT share is 100 − 79 = 21.
	order.Price = 121
	order.Items = []domain.OrderItem{{
		ID:           1,
		Type:         "product",
		ProductBased: true,
		Label:        "Thing",
		Code:         "T-1",
		Amount:       1,
		Unit:         "pcs",
		FinalPrice:   100,
		VatRate:      79,
	}}

	record, err := Hydrate(order)
	require.NoError(t, err)

	assert.InDelta(t, 121.0, record.TotalPrice.WithVAT, 1e-6)
	assert.InDelta(t, 100.0, record.TotalPrice.WithoutVAT, 1e-6)
	assert.InDelta(t, 21.0, record.TotalPrice.VAT, 1e-6)
	assert.Zero(t, record.TotalPrice.Rounding)
}

// The order total must come from the items, not from the order's own rate.
func TestHydrateOrderTotalIgnoresOrderRate(t *testing.T) {
	order := validOrder()
	order.VatRate = 50 // decoy
	order.Items = nil
	order.Price = 300

	record, err := Hydrate(order)
	require.NoError(t, err)

	assert.Zero(t, record.TotalPrice.VAT)
	assert.InDelta(t, 300.0, record.TotalPrice.WithoutVAT, 1e-6)
	assert.InDelta(t, 300.0, record.TotalPrice.WithVAT, 1e-6)
	assert.Empty(t, record.Items)
}

func TestHydrateVirtualItemCode(t *testing.T) {
	order := validOrder()
	order.Items = append(order.Items, domain.OrderItem{
		ID:           99,
		Type:         "shipping",
		ProductBased: false,
		Label:        "Delivery",
		Code:         "should-be-ignored",
		Variant:      &domain.Variant{Label: "ignored too"},
		Amount:       1,
		Unit:         "pcs",
		FinalPrice:   50,
		VatRate:      21,
	})

	record, err := Hydrate(order)
	require.NoError(t, err)

	require.Len(t, record.Items, 2)
	virtual := record.Items[1]
	assert.Equal(t, "virtual-99", virtual.Code)
	assert.Equal(t, "shipping", virtual.Type)
	// Variant names only apply to product-based items.
	assert.Nil(t, virtual.VariantName)
}

func TestHydrateVariantAndManufacturer(t *testing.T) {
	order := validOrder()
	order.Items[0].Variant = &domain.Variant{Label: "Blue / XL"}
	order.Items[0].Manufacturer = &domain.Manufacturer{Name: "Acme"}
	order.Items[0].Weight = floatPtr(1.5)

	record, err := Hydrate(order)
	require.NoError(t, err)

	item := record.Items[0]
	require.NotNil(t, item.VariantName)
	assert.Equal(t, "Blue / XL", *item.VariantName)
	require.NotNil(t, item.Manufacturer)
	assert.Equal(t, "Acme", *item.Manufacturer)
	require.NotNil(t, item.Weight)
	assert.Equal(t, 1.5, *item.Weight)
}

func TestHydrateAddressMapping(t *testing.T) {
	order := validOrder()
	order.DeliveryAddress.CompanyName = strPtr("Novak s.r.o.")
	order.DeliveryAddress.CompanyID = strPtr("12345678")
	order.DeliveryAddress.VatID = strPtr("CZ12345678")

	record, err := Hydrate(order)
	require.NoError(t, err)

	shipping := record.Customer.ShippingAddress
	assert.Equal(t, "Jan Novak", shipping.Name)
	assert.Equal(t, "Vodickova 12", shipping.Street)
	assert.Equal(t, "Prague", shipping.City)
	assert.Equal(t, "11000", shipping.Zip)
	assert.Equal(t, "Czech Republic", shipping.Country)
	require.NotNil(t, shipping.Company)
	assert.Equal(t, "Novak s.r.o.", *shipping.Company)
	require.NotNil(t, shipping.CompanyID)
	assert.Equal(t, "12345678", *shipping.CompanyID)
	require.NotNil(t, shipping.VatID)
	assert.Equal(t, "CZ12345678", *shipping.VatID)

	// The upstream model never splits out a house number.
	assert.Nil(t, shipping.HouseNumber)
	assert.Nil(t, record.Customer.BillingAddress.HouseNumber)
}

func TestHydrateBillingFallsBackToDelivery(t *testing.T) {
	order := validOrder()
	order.PaymentAddress = nil

	record, err := Hydrate(order)
	require.NoError(t, err)

	assert.Equal(t, record.Customer.ShippingAddress, record.Customer.BillingAddress)
}

func TestHydrateSeparatePaymentAddress(t *testing.T) {
	order := validOrder()
	order.PaymentAddress = &domain.Address{
		PersonName:  "Billing Dept",
		Street:      "Main 1",
		City:        "Brno",
		Zip:         "60200",
		CountryName: "Czech Republic",
	}

	record, err := Hydrate(order)
	require.NoError(t, err)

	assert.Equal(t, "Billing Dept", record.Customer.BillingAddress.Name)
	assert.Equal(t, "Brno", record.Customer.BillingAddress.City)
	assert.Equal(t, "Prague", record.Customer.ShippingAddress.City)
}

func TestHydrateMissingCustomer(t *testing.T) {
	order := validOrder()
	order.Customer = nil

	record, err := Hydrate(order)
	require.Error(t, err)
	assert.Nil(t, record)
	assert.ErrorIs(t, err, ErrMissingCustomer)
	assert.Contains(t, err.Error(), "ORD-42")
}

func TestHydrateMissingEmail(t *testing.T) {
	order := validOrder()
	order.Customer.Email = nil

	_, err := Hydrate(order)
	assert.ErrorIs(t, err, ErrMissingContact)
	assert.Contains(t, err.Error(), "ORD-42")
}

func TestHydrateMissingDeliveryAddress(t *testing.T) {
	order := validOrder()
	order.DeliveryAddress = nil

	_, err := Hydrate(order)
	assert.ErrorIs(t, err, ErrMissingAddress)
	assert.Contains(t, err.Error(), "ORD-42")
}

func TestHydrateIsDeterministic(t *testing.T) {
	order := validOrder()
	order.InvoiceNumber = strPtr("INV-42")
	order.PackageNumber = strPtr("PKG-1")
	order.Customer.Phone = strPtr("+420123456789")

	first, err := Hydrate(order)
	require.NoError(t, err)
	second, err := Hydrate(order)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestHydratePreservesItemOrder(t *testing.T) {
	order := validOrder()
	order.Items = []domain.OrderItem{
		{ID: 1, ProductBased: true, Code: "A", Label: "A", Amount: 1, FinalPrice: 10, VatRate: 21},
		{ID: 2, ProductBased: true, Code: "B", Label: "B", Amount: 1, FinalPrice: 10, VatRate: 21},
		{ID: 3, ProductBased: false, Label: "C", Amount: 1, FinalPrice: 10, VatRate: 21},
	}

	record, err := Hydrate(order)
	require.NoError(t, err)

	require.Len(t, record.Items, 3)
	assert.Equal(t, "A", record.Items[0].Code)
	assert.Equal(t, "B", record.Items[1].Code)
	assert.Equal(t, "virtual-3", record.Items[2].Code)
}
