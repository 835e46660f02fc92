package dto

// BlockSlotRequest is the payload of POST /block-slot.
type BlockSlotRequest struct {
	Date   string `json:"date" validate:"required"`
	Period int    `json:"period" validate:"required,min=1,max=6"`
	Reason string `json:"reason"`
}

// UnblockSlotRequest is the payload of POST /unblock-slot.
type UnblockSlotRequest struct {
	Date   string `json:"date" validate:"required"`
	Period int    `json:"period" validate:"required,min=1,max=6"`
}
