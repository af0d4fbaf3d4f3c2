//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func SeedDraft(t *testing.T, db DBLike, userID uuid.UUID, reservationID int64, step string) uuid.UUID {
	t.Helper()

	draftID := uuid.New()
	ctx := context.Background()
	now := time.Now()
	date := now.AddDate(0, 0, 14).Format("2006-01-02")

	_, err := db.Exec(ctx, `
		INSERT INTO reservation_drafts
		    (id, reservation_id, user_id, room_id, place_id, sheet_date, times, min_unit, server_price, estimated_price, step, created_at, updated_at)
		VALUES ($1, $2, $3, 12, 3, $4, $5, 30, 45000, 45000, $6, $7, $7)`,
		draftID, reservationID, userID, date, []string{"10:00", "10:30", "11:00"}, step, now)
	require.NoError(t, err)

	return draftID
}

// SeedDraftAt is SeedDraft with explicit use date and creation time,
// for cancellation-fee scenarios that depend on both.
func SeedDraftAt(t *testing.T, db DBLike, userID uuid.UUID, reservationID int64, step string, sheetDate, createdAt time.Time) uuid.UUID {
	t.Helper()

	draftID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, `
		INSERT INTO reservation_drafts
		    (id, reservation_id, user_id, room_id, place_id, sheet_date, times, min_unit, server_price, estimated_price, step, created_at, updated_at)
		VALUES ($1, $2, $3, 12, 3, $4, $5, 30, 45000, 45000, $6, $7, $7)`,
		draftID, reservationID, userID, sheetDate.Format("2006-01-02"), []string{"10:00", "10:30", "11:00"}, step, createdAt)
	require.NoError(t, err)

	return draftID
}

func SeedIdempotencyKey(t *testing.T, db DBLike, key, userID uuid.UUID, status string, resultDraftID *uuid.UUID) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx, `
		INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, result_draft_id, expires_at)
		VALUES ($1, $2, 'POST /reservations', 'seed-hash', $3, $4, $5)`,
		key, userID, status, resultDraftID, time.Now().Add(24*time.Hour))
	require.NoError(t, err)
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
