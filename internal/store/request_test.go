package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"e-waste-pickup/internal/database"
	"e-waste-pickup/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

/* ---------- 假實作 ---------- */

// fakeRequestRow 支援兩種 Scan 呼叫場景：
// 1) len(dest)==11 → GetRequestDetail (JOIN 投影)
// 2) len(dest)==3  → CreateRequest (id, status, created_at)
type fakeRequestRow struct {
	scanErr error
	detail  *model.RequestDetail
}

func scanDetail(dest []any, d *model.RequestDetail) {
	*dest[0].(*int) = d.ID
	*dest[1].(*int) = d.UserID
	*dest[2].(*string) = d.ItemType
	*dest[3].(*int) = d.Quantity
	*dest[4].(*string) = d.Address
	*dest[5].(*string) = d.Phone
	*dest[6].(*string) = d.PreferredDate
	*dest[7].(*string) = d.Status
	*dest[8].(*time.Time) = d.CreatedAt
	*dest[9].(*string) = d.UserName
	*dest[10].(*string) = d.UserEmail
}

func (r *fakeRequestRow) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	switch len(dest) {
	case 11:
		scanDetail(dest, r.detail)
	case 3:
		*dest[0].(*int) = r.detail.ID
		*dest[1].(*string) = r.detail.Status
		*dest[2].(*time.Time) = r.detail.CreatedAt
	default:
		panic("fakeRequestRow.Scan: unexpected dest count")
	}
	return nil
}

// fakeRequestRows 實作 pgx.Rows，用於模擬多筆掃描行為。
type fakeRequestRows struct {
	data    []model.RequestDetail
	idx     int
	scanErr error
	err     error
}

func (r *fakeRequestRows) Close()                                       {}
func (r *fakeRequestRows) Err() error                                   { return r.err }
func (r *fakeRequestRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRequestRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRequestRows) Next() bool                                   { return r.idx < len(r.data) }
func (r *fakeRequestRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	d := r.data[r.idx]
	r.idx++
	scanDetail(dest, &d)
	return nil
}
func (r *fakeRequestRows) Values() ([]any, error) { return nil, nil }
func (r *fakeRequestRows) RawValues() [][]byte    { return nil }
func (r *fakeRequestRows) Conn() *pgx.Conn        { return nil }

func sampleDetails(now time.Time) []model.RequestDetail {
	return []model.RequestDetail{
		{
			Request: model.Request{
				ID: 2, UserID: 1, ItemType: "monitor", Quantity: 1,
				Address: "2 Oak Ave", Phone: "555-2222", PreferredDate: "2025-06-02",
				Status: model.StatusPending, CreatedAt: now.Add(time.Hour),
			},
			UserName: "Alice", UserEmail: "alice@example.com",
		},
		{
			Request: model.Request{
				ID: 1, UserID: 1, ItemType: "laptop", Quantity: 2,
				Address: "1 Main St", Phone: "555-1111", PreferredDate: "2025-06-01",
				Status: model.StatusCollected, CreatedAt: now,
			},
			UserName: "Alice", UserEmail: "alice@example.com",
		},
	}
}

/* ---------- 完整測試 ---------- */

func TestCreateRequest(t *testing.T) {
	now := time.Now().UTC()

	t.Run("success sets pending", func(t *testing.T) {
		var gotArgs []any
		p := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				gotArgs = args
				return &fakeRequestRow{detail: &model.RequestDetail{
					Request: model.Request{ID: 9, Status: model.StatusPending, CreatedAt: now},
				}}
			},
		}
		r := &model.Request{UserID: 1, ItemType: "laptop", Quantity: 2, Address: "1 Main St", Phone: "555-1111", PreferredDate: "2025-06-01"}
		created, err := CreateRequest(context.Background(), p, r)
		require.NoError(t, err)
		require.Equal(t, 9, created.ID)
		require.Equal(t, model.StatusPending, created.Status)
		require.Equal(t, []any{1, "laptop", 2, "1 Main St", "555-1111", "2025-06-01"}, gotArgs)
	})

	t.Run("error", func(t *testing.T) {
		p := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeRequestRow{scanErr: errors.New("insert failed")}
			},
		}
		_, err := CreateRequest(context.Background(), p, &model.Request{})
		require.Error(t, err)
	})
}

func TestListRequests(t *testing.T) {
	now := time.Now().UTC()
	data := sampleDetails(now)

	t.Run("ListRequestsByUser scopes to owner", func(t *testing.T) {
		var gotSQL string
		var gotArgs []any
		p := &database.FakeDB{
			QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
				gotSQL = sql
				gotArgs = args
				return &fakeRequestRows{data: data}, nil
			},
		}
		details, err := ListRequestsByUser(context.Background(), p, 1)
		require.NoError(t, err)
		require.Len(t, details, 2)
		require.Equal(t, "monitor", details[0].ItemType)
		require.Equal(t, "Alice", details[0].UserName)
		require.Contains(t, gotSQL, "r.user_id = $1")
		require.Contains(t, gotSQL, "ORDER BY r.created_at DESC")
		require.Equal(t, []any{1}, gotArgs)
	})

	t.Run("ListAllRequests unrestricted", func(t *testing.T) {
		var gotSQL string
		p := &database.FakeDB{
			QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
				gotSQL = sql
				require.Empty(t, args)
				return &fakeRequestRows{data: data}, nil
			},
		}
		details, err := ListAllRequests(context.Background(), p)
		require.NoError(t, err)
		require.Len(t, details, 2)
		require.NotContains(t, gotSQL, "WHERE")
		require.Contains(t, gotSQL, "ORDER BY r.created_at DESC")
	})

	t.Run("empty result is empty slice", func(t *testing.T) {
		p := &database.FakeDB{
			QueryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
				return &fakeRequestRows{}, nil
			},
		}
		details, err := ListAllRequests(context.Background(), p)
		require.NoError(t, err)
		require.NotNil(t, details)
		require.Empty(t, details)
	})

	t.Run("query error", func(t *testing.T) {
		p := &database.FakeDB{
			QueryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
				return nil, errors.New("query failed")
			},
		}
		_, err := ListAllRequests(context.Background(), p)
		require.Error(t, err)
	})

	t.Run("rows error", func(t *testing.T) {
		p := &database.FakeDB{
			QueryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
				return &fakeRequestRows{err: errors.New("rows")}, nil
			},
		}
		_, err := ListRequestsByUser(context.Background(), p, 1)
		require.Error(t, err)
	})
}

func TestSearchRequests(t *testing.T) {
	now := time.Now().UTC()
	data := sampleDetails(now)

	t.Run("no filters behaves like ListAllRequests", func(t *testing.T) {
		var gotSQL string
		p := &database.FakeDB{
			QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
				gotSQL = sql
				require.Empty(t, args)
				return &fakeRequestRows{data: data}, nil
			},
		}
		details, err := SearchRequests(context.Background(), p, "", "all")
		require.NoError(t, err)
		require.Len(t, details, 2)
		require.NotContains(t, gotSQL, "r.status =")
		require.NotContains(t, gotSQL, "LIKE")
	})

	t.Run("status filter only", func(t *testing.T) {
		var gotSQL string
		var gotArgs []any
		p := &database.FakeDB{
			QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
				gotSQL = sql
				gotArgs = args
				return &fakeRequestRows{data: data[:1]}, nil
			},
		}
		_, err := SearchRequests(context.Background(), p, "", model.StatusPending)
		require.NoError(t, err)
		require.Contains(t, gotSQL, "r.status = $1")
		require.Equal(t, []any{model.StatusPending}, gotArgs)
	})

	t.Run("query lowercased and wrapped in wildcards", func(t *testing.T) {
		var gotSQL string
		var gotArgs []any
		p := &database.FakeDB{
			QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
				gotSQL = sql
				gotArgs = args
				return &fakeRequestRows{data: data[1:]}, nil
			},
		}
		_, err := SearchRequests(context.Background(), p, "LapTop", "all")
		require.NoError(t, err)
		require.Equal(t, []any{"%laptop%"}, gotArgs)
		require.Contains(t, gotSQL, "lower(r.item_type) LIKE $1")
		require.Contains(t, gotSQL, "lower(u.name) LIKE $1")
		require.Contains(t, gotSQL, "lower(u.email) LIKE $1")
		// 請求編號以十進位文字做子字串比對
		require.Contains(t, gotSQL, "r.id::text LIKE $1")
	})

	t.Run("both filters AND together", func(t *testing.T) {
		var gotSQL string
		var gotArgs []any
		p := &database.FakeDB{
			QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
				gotSQL = sql
				gotArgs = args
				return &fakeRequestRows{}, nil
			},
		}
		_, err := SearchRequests(context.Background(), p, "laptop", model.StatusCollected)
		require.NoError(t, err)
		require.Equal(t, []any{model.StatusCollected, "%laptop%"}, gotArgs)
		require.Contains(t, gotSQL, "r.status = $1")
		require.Contains(t, gotSQL, "lower(r.item_type) LIKE $2")
		require.Equal(t, 1, strings.Count(gotSQL, "r.status ="))
	})
}

func TestUpdateRequestStatus(t *testing.T) {
	now := time.Now().UTC()
	collected := &model.RequestDetail{
		Request: model.Request{
			ID: 1, UserID: 1, ItemType: "laptop", Quantity: 2,
			Address: "1 Main St", Phone: "555-1111", PreferredDate: "2025-06-01",
			Status: model.StatusCollected, CreatedAt: now,
		},
		UserName: "Alice", UserEmail: "alice@example.com",
	}

	t.Run("success reads back joined row", func(t *testing.T) {
		p := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
				require.Equal(t, []any{model.StatusCollected, 1}, args)
				return pgconn.NewCommandTag("UPDATE 1"), nil
			},
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeRequestRow{detail: collected}
			},
		}
		updated, err := UpdateRequestStatus(context.Background(), p, 1, model.StatusCollected)
		require.NoError(t, err)
		require.Equal(t, model.StatusCollected, updated.Status)
		require.Equal(t, "Alice", updated.UserName)
	})

	t.Run("idempotent on repeated status", func(t *testing.T) {
		execCount := 0
		p := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
				execCount++
				return pgconn.NewCommandTag("UPDATE 1"), nil
			},
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeRequestRow{detail: collected}
			},
		}
		first, err := UpdateRequestStatus(context.Background(), p, 1, model.StatusCollected)
		require.NoError(t, err)
		second, err := UpdateRequestStatus(context.Background(), p, 1, model.StatusCollected)
		require.NoError(t, err)
		require.Equal(t, first, second)
		require.Equal(t, 2, execCount)
	})

	t.Run("not found", func(t *testing.T) {
		p := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
				return pgconn.NewCommandTag("UPDATE 0"), nil
			},
		}
		_, err := UpdateRequestStatus(context.Background(), p, 999, model.StatusCollected)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("exec error", func(t *testing.T) {
		p := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
				return pgconn.CommandTag{}, errors.New("update failed")
			},
		}
		_, err := UpdateRequestStatus(context.Background(), p, 1, model.StatusCollected)
		require.Error(t, err)
	})
}

func TestGetRequestDetail(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		p := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeRequestRow{scanErr: pgx.ErrNoRows}
			},
		}
		_, err := GetRequestDetail(context.Background(), p, 5)
		require.ErrorIs(t, err, ErrNotFound)
	})
}
