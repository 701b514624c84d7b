package api

import (
	"time"

	"e-waste-pickup/internal/model"
)

// RequestData 單筆回收請求；userName 與 userEmail
// 只在 JOIN 擁有者的列表查詢中出現
// swagger:model api.RequestData
type RequestData struct {
	ID            int       `json:"id" example:"1"`
	UserID        int       `json:"userId" example:"1"`
	ItemType      string    `json:"itemType" example:"laptop"`
	Quantity      int       `json:"quantity" example:"2"`
	Address       string    `json:"address" example:"1 Main St"`
	Phone         string    `json:"phone" example:"555-1111"`
	PreferredDate string    `json:"preferredDate" example:"2025-06-01"`
	Status        string    `json:"status" example:"pending"`
	CreatedAt     time.Time `json:"createdAt" example:"2025-05-01T15:04:05Z"`
	UserName      string    `json:"userName,omitempty" example:"Alice"`
	UserEmail     string    `json:"userEmail,omitempty" example:"alice@example.com"`
}

// swagger:model api.RequestResponse
type RequestResponse struct {
	Request RequestData `json:"request"`
}

// swagger:model api.RequestListResponse
type RequestListResponse struct {
	Requests []RequestData `json:"requests"`
}

// NewRequestData 由 model.Request 組裝回應
func NewRequestData(r *model.Request) RequestData {
	return RequestData{
		ID:            r.ID,
		UserID:        r.UserID,
		ItemType:      r.ItemType,
		Quantity:      r.Quantity,
		Address:       r.Address,
		Phone:         r.Phone,
		PreferredDate: r.PreferredDate,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
	}
}

// NewRequestDetailData 由 JOIN 結果組裝回應，附擁有者姓名與 Email
func NewRequestDetailData(d *model.RequestDetail) RequestData {
	data := NewRequestData(&d.Request)
	data.UserName = d.UserName
	data.UserEmail = d.UserEmail
	return data
}

// NewRequestListResponse 組裝列表回應，空列表輸出為 [] 而非 null
func NewRequestListResponse(details []model.RequestDetail) RequestListResponse {
	requests := make([]RequestData, 0, len(details))
	for i := range details {
		requests = append(requests, NewRequestDetailData(&details[i]))
	}
	return RequestListResponse{Requests: requests}
}
