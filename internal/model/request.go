// File: internal/model/request.go
package model

import "time"

// 回收請求狀態，僅允許兩種值
const (
	StatusPending   = "pending"
	StatusCollected = "collected"
)

// ValidStatus 檢查狀態值是否為合法狀態
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusCollected
}

type Request struct {
	ID            int       `db:"id" json:"id"`
	UserID        int       `db:"user_id" json:"userId"`
	ItemType      string    `db:"item_type" json:"itemType"`
	Quantity      int       `db:"quantity" json:"quantity"`
	Address       string    `db:"address" json:"address"`
	Phone         string    `db:"phone" json:"phone"`
	PreferredDate string    `db:"preferred_date" json:"preferredDate"`
	Status        string    `db:"status" json:"status"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// RequestDetail 為 Request 加上擁有者姓名與 Email（JOIN users 的結果）
type RequestDetail struct {
	Request
	UserName  string `db:"user_name" json:"userName"`
	UserEmail string `db:"user_email" json:"userEmail"`
}
