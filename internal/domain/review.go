package domain

// Review is feedback left on a ride.
type Review struct {
	ID                string  `json:"id"`
	UserID            string  `json:"userId"`
	RideID            string  `json:"rideId"`
	VehicleNumber     string  `json:"vehicle_number"`
	ReviewDescription string  `json:"review_description"`
	ReviewBy          string  `json:"reviewby"`
	Rating            float64 `json:"rating"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}
