package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"e-waste-pickup/internal/database"
	"e-waste-pickup/internal/model"

	"github.com/jackc/pgx/v5"
)

// selectRequestDetail 為所有列表查詢共用的 JOIN 投影
const selectRequestDetail = `SELECT r.id, r.user_id, r.item_type, r.quantity, r.address, r.phone,
        r.preferred_date, r.status, r.created_at, u.name, u.email
 FROM requests r JOIN users u ON r.user_id = u.id`

func scanRequestDetail(row pgx.Row, d *model.RequestDetail) error {
	return row.Scan(
		&d.ID,
		&d.UserID,
		&d.ItemType,
		&d.Quantity,
		&d.Address,
		&d.Phone,
		&d.PreferredDate,
		&d.Status,
		&d.CreatedAt,
		&d.UserName,
		&d.UserEmail,
	)
}

func queryRequestDetails(ctx context.Context, db database.DB, sql string, args ...any) ([]model.RequestDetail, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := []model.RequestDetail{}
	for rows.Next() {
		var d model.RequestDetail
		if err := scanRequestDetail(rows, &d); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// CreateRequest 新增回收請求，狀態一律由資料庫預設為 pending
func CreateRequest(ctx context.Context, db database.DB, r *model.Request) (*model.Request, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO requests (user_id, item_type, quantity, address, phone, preferred_date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, status, created_at`,
		r.UserID,
		r.ItemType,
		r.Quantity,
		r.Address,
		r.Phone,
		r.PreferredDate,
	)
	if err := row.Scan(&r.ID, &r.Status, &r.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateRequest: %w", err)
	}
	return r, nil
}

// ListRequestsByUser 回傳指定使用者的請求，新的在前
func ListRequestsByUser(ctx context.Context, db database.DB, userID int) ([]model.RequestDetail, error) {
	details, err := queryRequestDetails(ctx, db,
		selectRequestDetail+` WHERE r.user_id = $1 ORDER BY r.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListRequestsByUser: %w", err)
	}
	return details, nil
}

// ListAllRequests 回傳全部請求，新的在前
func ListAllRequests(ctx context.Context, db database.DB) ([]model.RequestDetail, error) {
	details, err := queryRequestDetails(ctx, db,
		selectRequestDetail+` ORDER BY r.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListAllRequests: %w", err)
	}
	return details, nil
}

// SearchRequests 依狀態與關鍵字過濾請求
// status 為 all 時不過濾狀態；q 非空時對品項、擁有者姓名、Email
// 以及轉為十進位文字的請求編號做不分大小寫的子字串比對
func SearchRequests(ctx context.Context, db database.DB, q, status string) ([]model.RequestDetail, error) {
	sql := selectRequestDetail + ` WHERE 1=1`
	args := []any{}
	if status != "all" {
		args = append(args, status)
		sql += fmt.Sprintf(` AND r.status = $%d`, len(args))
	}
	if q != "" {
		args = append(args, "%"+strings.ToLower(q)+"%")
		n := len(args)
		sql += fmt.Sprintf(` AND (lower(r.item_type) LIKE $%d OR lower(u.name) LIKE $%d
         OR lower(u.email) LIKE $%d OR r.id::text LIKE $%d)`, n, n, n, n)
	}
	sql += ` ORDER BY r.created_at DESC`

	details, err := queryRequestDetails(ctx, db, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("SearchRequests: %w", err)
	}
	return details, nil
}

// GetRequestDetail 以編號取得單筆請求（含擁有者資訊）
func GetRequestDetail(ctx context.Context, db database.DB, requestID int) (*model.RequestDetail, error) {
	row := db.QueryRow(ctx,
		selectRequestDetail+` WHERE r.id = $1`,
		requestID,
	)
	d := &model.RequestDetail{}
	if err := scanRequestDetail(row, d); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("GetRequestDetail: %w", err)
	}
	return d, nil
}

// UpdateRequestStatus 更新請求狀態並回讀更新後的資料
// 對同一狀態重複呼叫是冪等的；編號不存在時回傳 ErrNotFound
func UpdateRequestStatus(ctx context.Context, db database.DB, requestID int, status string) (*model.RequestDetail, error) {
	tag, err := db.Exec(ctx,
		`UPDATE requests SET status = $1 WHERE id = $2`,
		status,
		requestID,
	)
	if err != nil {
		return nil, fmt.Errorf("UpdateRequestStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return GetRequestDetail(ctx, db, requestID)
}
