package api

// swagger:model api.UpdateRequestStatusRequest
type UpdateRequestStatusRequest struct {
	Status string `json:"status" validate:"required" example:"collected"`
}
