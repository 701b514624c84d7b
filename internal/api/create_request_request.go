package api

// swagger:model api.CreateRequestRequest
type CreateRequestRequest struct {
	ItemType      string `json:"itemType" validate:"required" example:"laptop"`
	Quantity      int    `json:"quantity" validate:"required,gt=0" example:"2"`
	Address       string `json:"address" validate:"required" example:"1 Main St"`
	Phone         string `json:"phone" validate:"required" example:"555-1111"`
	PreferredDate string `json:"preferredDate" validate:"required,datetime=2006-01-02" example:"2025-06-01"`
}
