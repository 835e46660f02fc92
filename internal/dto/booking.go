package dto

import "github.com/sportoase/sportoase-api/internal/models"

// CreateBookingRequest is the payload of POST /book.
type CreateBookingRequest struct {
	Date       string           `json:"date" validate:"required"`
	Period     int              `json:"period" validate:"required,min=1,max=6"`
	Students   []models.Student `json:"students" validate:"required,min=1,dive"`
	OfferType  string           `json:"offer_type" validate:"required"`
	OfferLabel string           `json:"offer_label"`
}

// BookingListQuery filters booking listings. Date selects a single
// day; StartDate/EndDate bound a range. Date wins when both are set.
type BookingListQuery struct {
	Date      string `form:"date"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}
