package dto

// UpdateTimeSlotRequest is the payload of PATCH /timeslots/:id. Only the
// label is editable; times and capacity stay fixed reference data.
type UpdateTimeSlotRequest struct {
	Label string `json:"label" validate:"required,max=100"`
}
