package domain

import "github.com/shopspring/decimal"

// Ride is a trip taken by a rental or taxi customer.
type Ride struct {
	ID            string              `json:"id"`
	RideID        string              `json:"ride_id"`
	VehicleNumber string              `json:"vehicle_number"`
	BookingDate   *string             `json:"booking_date"`
	BookingTime   *string             `json:"booking_time"`
	Fare          decimal.NullDecimal `json:"fare"`
	Status        string              `json:"ride_status"`
}

// Analytics is the per-customer ride breakdown rendered as a pie chart.
type Analytics struct {
	TotalRides FlexInt          `json:"totalRides"`
	Values     []AnalyticsValue `json:"values"`
}

// AnalyticsValue is one slice of the analytics chart.
type AnalyticsValue struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}
