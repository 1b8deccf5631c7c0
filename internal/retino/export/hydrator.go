package export

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/shopera/retino-feed/internal/retino/domain"
)

// Precondition violations. All abort the hydration of the whole batch; match
// with errors.Is.
var (
	ErrMissingCustomer = errors.New("customer is mandatory")
	ErrMissingContact  = errors.New("customer e-mail is mandatory, but no contact given")
	ErrMissingAddress  = errors.New("delivery address is mandatory")
)

// Hydrate transforms a domain order into its canonical export record.
// It is a pure function of the order graph: no side effects, deterministic,
// built fresh on every call.
func Hydrate(order *domain.Order) (*Record, error) {
	customer := order.Customer
	if customer == nil {
		return nil, fmt.Errorf("order %q: %w", order.Number, ErrMissingCustomer)
	}

	customerRecord, err := hydrateCustomer(order, customer)
	if err != nil {
		return nil, err
	}

	items := make([]ItemRecord, 0, len(order.Items))
	var accumulatedVat float64
	for _, item := range order.Items {
		items = append(items, hydrateItem(item))

		// Order-level VAT is accumulated bottom-up from the item totals so
		// that orders mixing several VAT rates are not collapsed onto a
		// single rate.
		itemTotal := item.FinalPrice * item.Amount
		accumulatedVat += itemTotal - itemTotal*(item.VatRate/100)
	}

	return &Record{
		OrderID:       strconv.FormatInt(order.ID, 10),
		Code:          order.Number,
		InvoiceCode:   order.InvoiceNumber,
		Date:          FormatDateTime(order.InsertedAt),
		Currency:      Currency{Code: order.CurrencyCode},
		PackageNumber: order.PackageNumber,
		Customer:      customerRecord,
		TotalPrice: TotalPrice{
			WithVAT:    order.Price,
			WithoutVAT: order.Price - accumulatedVat,
			VAT:        accumulatedVat,
			Rounding:   0,
		},
		Items: items,
	}, nil
}

func hydrateCustomer(order *domain.Order, customer *domain.Customer) (CustomerRecord, error) {
	if customer.Email == nil {
		return CustomerRecord{}, fmt.Errorf("order %q: %w", order.Number, ErrMissingContact)
	}

	deliveryAddress := order.DeliveryAddress
	if deliveryAddress == nil {
		return CustomerRecord{}, fmt.Errorf("order %q: %w", order.Number, ErrMissingAddress)
	}

	// Single fallback rule: billing follows delivery when no payment address
	// was captured.
	paymentAddress := order.PaymentAddress
	if paymentAddress == nil {
		paymentAddress = deliveryAddress
	}

	return CustomerRecord{
		Email:           *customer.Email,
		Phone:           customer.Phone,
		BillingAddress:  hydrateAddress(paymentAddress),
		ShippingAddress: hydrateAddress(deliveryAddress),
	}, nil
}

func hydrateItem(item domain.OrderItem) ItemRecord {
	var code string
	var variantName *string
	if item.ProductBased {
		code = item.Code
		if item.Variant != nil {
			variantName = &item.Variant.Label
		}
	} else {
		code = fmt.Sprintf("virtual-%d", item.ID)
	}

	var manufacturer *string
	if item.Manufacturer != nil {
		manufacturer = &item.Manufacturer.Name
	}

	unitPrice := item.FinalPrice
	totalPrice := unitPrice * item.Amount

	return ItemRecord{
		Type:         NormalizeItemType(item.Type),
		Name:         item.Label,
		Code:         code,
		VariantName:  variantName,
		Manufacturer: manufacturer,
		Amount:       item.Amount,
		Unit:         item.Unit,
		Weight:       item.Weight,
		UnitPrice:    DecomposePrice(unitPrice, item.VatRate),
		TotalPrice:   DecomposePrice(totalPrice, item.VatRate),
	}
}

func hydrateAddress(address *domain.Address) AddressRecord {
	return AddressRecord{
		Name:        address.PersonName,
		Company:     address.CompanyName,
		Street:      address.Street,
		HouseNumber: nil,
		City:        address.City,
		Zip:         address.Zip,
		Country:     address.CountryName,
		CompanyID:   address.CompanyID,
		VatID:       address.VatID,
	}
}
