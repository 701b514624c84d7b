package store

import "errors"

// 哨兵錯誤，供 handler 以 errors.Is 判斷對應的 HTTP 狀態
var (
	ErrDuplicateEmail = errors.New("email already used")
	ErrNotFound       = errors.New("record not found")
)
