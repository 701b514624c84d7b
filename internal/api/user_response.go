package api

import (
	"time"

	"e-waste-pickup/internal/model"
)

// swagger:model api.UserResponse
type UserResponse struct {
	ID        int       `json:"id" example:"1"`
	Name      string    `json:"name" example:"Alice"`
	Email     string    `json:"email" example:"alice@example.com"`
	IsAdmin   bool      `json:"isAdmin" example:"false"`
	CreatedAt time.Time `json:"createdAt" example:"2025-05-01T15:04:05Z"`
}

// NewUserResponse 由 model.User 組裝回應，密碼哈希永不外流
func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

// AuthResponse 為 signup 與 login 的成功回應
// swagger:model api.AuthResponse
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}
