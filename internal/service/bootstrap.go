// File: internal/service/bootstrap.go
package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"e-waste-pickup/internal/database"
)

// EnsureAdmin 確保系統中存在管理員帳號，於啟動時執行一次
// 以 ON CONFLICT DO NOTHING 達成冪等：帳號已存在時不做任何變更
func EnsureAdmin(ctx context.Context, db database.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	email = strings.ToLower(email)

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("EnsureAdmin: %w", err)
	}

	tag, err := db.Exec(ctx,
		`INSERT INTO users (name, email, password_hash, is_admin)
		 VALUES ($1, $2, $3, TRUE)
		 ON CONFLICT (email) DO NOTHING`,
		"Admin",
		email,
		hash,
	)
	if err != nil {
		return fmt.Errorf("EnsureAdmin: %w", err)
	}
	if tag.RowsAffected() > 0 {
		log.Printf("admin account created: %s", email)
	}
	return nil
}
