package httpx

import (
	"time"

	"github.com/shopera/retino-feed/internal/retino/domain"
	"github.com/shopera/retino-feed/internal/retino/feed/feedlog"
)

// FeedRequest carries the ordered collection of orders to export. The
// collection order is preserved end to end.
type FeedRequest struct {
	Orders []OrderDTO `json:"orders"`
}

type OrderDTO struct {
	ID            int64          `json:"id"`
	Number        string         `json:"number"`
	InvoiceNumber *string        `json:"invoice_number,omitempty"`
	InsertedAt    time.Time      `json:"inserted_at"`
	CurrencyCode  string         `json:"currency_code"`
	PackageNumber *string        `json:"package_number,omitempty"`
	Customer      *CustomerDTO   `json:"customer,omitempty"`
	Delivery      *AddressDTO    `json:"delivery_address,omitempty"`
	Payment       *AddressDTO    `json:"payment_address,omitempty"`
	Price         float64        `json:"price"`
	VatRate       float64        `json:"vat_rate"`
	Items         []OrderItemDTO `json:"items"`
}

type CustomerDTO struct {
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

type AddressDTO struct {
	PersonName  string  `json:"person_name"`
	CompanyName *string `json:"company_name,omitempty"`
	Street      string  `json:"street"`
	City        string  `json:"city"`
	Zip         string  `json:"zip"`
	CountryName string  `json:"country_name"`
	CompanyID   *string `json:"company_id,omitempty"`
	VatID       *string `json:"vat_id,omitempty"`
}

type OrderItemDTO struct {
	ID           int64    `json:"id"`
	Type         string   `json:"type"`
	ProductBased bool     `json:"product_based"`
	Label        string   `json:"label"`
	Code         string   `json:"code,omitempty"`
	VariantLabel *string  `json:"variant_label,omitempty"`
	Manufacturer *string  `json:"manufacturer,omitempty"`
	Amount       float64  `json:"amount"`
	Unit         string   `json:"unit"`
	Weight       *float64 `json:"weight,omitempty"`
	FinalPrice   float64  `json:"final_price"`
	VatRate      float64  `json:"vat_rate"`
}

type RunResponse struct {
	RunID      string `json:"run_id"`
	Status     string `json:"status"`
	OrderCount int    `json:"order_count"`
	Error      string `json:"error,omitempty"`
	TraceID    string `json:"trace_id,omitempty"`
	CreatedAt  string `json:"created_at"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// mapOrdersToDomain converts the request payload into the read-only domain
// model consumed by the hydrator.
func mapOrdersToDomain(dtos []OrderDTO) []domain.Order {
	orders := make([]domain.Order, len(dtos))
	for i, dto := range dtos {
		orders[i] = domain.Order{
			ID:              dto.ID,
			Number:          dto.Number,
			InvoiceNumber:   dto.InvoiceNumber,
			InsertedAt:      dto.InsertedAt,
			CurrencyCode:    dto.CurrencyCode,
			PackageNumber:   dto.PackageNumber,
			Customer:        mapCustomer(dto.Customer),
			DeliveryAddress: mapAddress(dto.Delivery),
			PaymentAddress:  mapAddress(dto.Payment),
			Price:           dto.Price,
			VatRate:         dto.VatRate,
			Items:           mapItems(dto.Items),
		}
	}
	return orders
}

func mapCustomer(dto *CustomerDTO) *domain.Customer {
	if dto == nil {
		return nil
	}
	return &domain.Customer{
		Email: dto.Email,
		Phone: dto.Phone,
	}
}

func mapAddress(dto *AddressDTO) *domain.Address {
	if dto == nil {
		return nil
	}
	return &domain.Address{
		PersonName:  dto.PersonName,
		CompanyName: dto.CompanyName,
		Street:      dto.Street,
		City:        dto.City,
		Zip:         dto.Zip,
		CountryName: dto.CountryName,
		CompanyID:   dto.CompanyID,
		VatID:       dto.VatID,
	}
}

func mapItems(dtos []OrderItemDTO) []domain.OrderItem {
	items := make([]domain.OrderItem, len(dtos))
	for i, dto := range dtos {
		var variant *domain.Variant
		if dto.VariantLabel != nil {
			variant = &domain.Variant{Label: *dto.VariantLabel}
		}
		var manufacturer *domain.Manufacturer
		if dto.Manufacturer != nil {
			manufacturer = &domain.Manufacturer{Name: *dto.Manufacturer}
		}
		items[i] = domain.OrderItem{
			ID:           dto.ID,
			Type:         dto.Type,
			ProductBased: dto.ProductBased,
			Label:        dto.Label,
			Code:         dto.Code,
			Variant:      variant,
			Manufacturer: manufacturer,
			Amount:       dto.Amount,
			Unit:         dto.Unit,
			Weight:       dto.Weight,
			FinalPrice:   dto.FinalPrice,
			VatRate:      dto.VatRate,
		}
	}
	return items
}

func mapRunToResponse(entry feedlog.Entry) RunResponse {
	return RunResponse{
		RunID:      entry.RunID,
		Status:     string(entry.Status),
		OrderCount: entry.OrderCount,
		Error:      entry.Error,
		TraceID:    entry.TraceID,
		CreatedAt:  entry.CreatedAt.UTC().Format(time.RFC3339),
	}
}
