package api

import "time"

// ---- Menu ----

type MenuItem struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// ---- Orders ----

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "Cash"
	PaymentOnline PaymentMethod = "Online"
)

type CustomerDetails struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Guests int    `json:"guests"`
}

type OrderItemInput struct {
	Item      string  `json:"item"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type CreateOrderRequest struct {
	TableID         string           `json:"tableId,omitempty"`
	SessionID       string           `json:"sessionId,omitempty"`
	Items           []OrderItemInput `json:"items"`
	CustomerDetails CustomerDetails  `json:"customerDetails"`
	PaymentMethod   PaymentMethod    `json:"paymentMethod"`
}

type Bills struct {
	Subtotal float64 `json:"total"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"totalWithTax"`
}

type TableRef struct {
	ID      string `json:"_id"`
	TableNo int    `json:"tableNo"`
}

// Order is the server-confirmed record; immutable from the client side.
type Order struct {
	ID              string           `json:"_id"`
	OrderCode       string           `json:"orderCode"`
	CustomerDetails CustomerDetails  `json:"customerDetails"`
	Bills           Bills            `json:"bills"`
	Items           []OrderItemInput `json:"items"`
	PaymentMethod   PaymentMethod    `json:"paymentMethod"`
	Table           *TableRef        `json:"table,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// ---- Tables ----

type TableStatus string

const (
	TableAvailable TableStatus = "Available"
	TableBooked    TableStatus = "Booked"
)

type Table struct {
	ID             string      `json:"_id"`
	TableNo        int         `json:"tableNo"`
	Status         TableStatus `json:"status"`
	SeatCount      int         `json:"seats"`
	CurrentOrderID string      `json:"currentOrder,omitempty"`
}

type UpdateTableRequest struct {
	Status  TableStatus `json:"status"`
	OrderID string      `json:"orderId,omitempty"`
}

// ---- PlayStation devices & metered sessions ----

type DeviceStatus string

const (
	DeviceAvailable DeviceStatus = "available"
	DeviceOccupied  DeviceStatus = "occupied"
)

type Session struct {
	ID                   string    `json:"_id"`
	DeviceID             string    `json:"playStationId"`
	StartTime            time.Time `json:"startTime"`
	PricePerHourSnapshot float64   `json:"pricePerHourSnapshot"`
	Status               string    `json:"status"`
}

type Device struct {
	ID             string       `json:"_id"`
	Name           string       `json:"name"`
	Type           string       `json:"type"`
	Status         DeviceStatus `json:"status"`
	PricePerHour   float64      `json:"pricePerHour"`
	CurrentSession *Session     `json:"currentSessionId,omitempty"`
}

type SessionInvoice struct {
	SessionID       string  `json:"sessionId"`
	DurationMinutes int     `json:"durationMinutes"`
	Amount          float64 `json:"finalInvoiceTotal"`
}
