package repository

import (
	"context"
	"encoding/json"
	"time"

	"studiobook/internal/domain/selection"
	"studiobook/internal/domain/slot"
	"studiobook/internal/infra"
	"studiobook/internal/pkg/pgconv"
	"studiobook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository persists one selection session per user, room and
// date. The session pins the slot catalog the user is clicking against
// so that a second click resolves over the same sheet the first click
// saw, even if the platform sheet moved in between.
type SessionRepository struct {
	db *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: pool}
}

const upsertSessionSQL = `
INSERT INTO selection_sessions (
    user_id, room_id, sheet_date, phase, first_index, indices,
    catalog, sheet_hash, min_unit, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (user_id, room_id, sheet_date) DO UPDATE SET
    phase       = EXCLUDED.phase,
    first_index = EXCLUDED.first_index,
    indices     = EXCLUDED.indices,
    catalog     = EXCLUDED.catalog,
    sheet_hash  = EXCLUDED.sheet_hash,
    min_unit    = EXCLUDED.min_unit,
    updated_at  = EXCLUDED.updated_at`

func (r *SessionRepository) Upsert(ctx context.Context, s *shared.SelectionSession) error {
	catalogJSON, err := json.Marshal(s.Catalog)
	if err != nil {
		return infra.WrapRepoErr("failed to encode catalog snapshot", err)
	}

	_, err = r.db.Exec(ctx, upsertSessionSQL,
		pgconv.UUIDToPgtype(s.UserID),
		s.RoomID,
		pgconv.DateToPgtype(s.Date),
		string(s.State.Phase()),
		int32(s.State.FirstIndex()),
		toInt32Slice(s.State.Indices()),
		catalogJSON,
		s.SheetHash,
		int32(s.MinUnit),
		pgconv.TimeToPgtype(s.UpdatedAt),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert selection session", err)
	}
	return nil
}

const findSessionSQL = `
SELECT phase, first_index, indices, catalog, sheet_hash, min_unit, updated_at
FROM selection_sessions
WHERE user_id = $1 AND room_id = $2 AND sheet_date = $3`

func (r *SessionRepository) Find(ctx context.Context, userID uuid.UUID, roomID int64, date time.Time) (*shared.SelectionSession, error) {
	var (
		phase       string
		firstIndex  int32
		indices     []int32
		catalogJSON []byte
		sheetHash   string
		minUnit     int32
		updatedAt   time.Time
	)

	row := r.db.QueryRow(ctx, findSessionSQL,
		pgconv.UUIDToPgtype(userID), roomID, pgconv.DateToPgtype(date))
	err := row.Scan(&phase, &firstIndex, &indices, &catalogJSON, &sheetHash, &minUnit, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("selection session not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find selection session", err)
	}

	var catalog slot.Catalog
	if err := json.Unmarshal(catalogJSON, &catalog); err != nil {
		return nil, infra.WrapRepoErr("failed to decode catalog snapshot", err)
	}

	return &shared.SelectionSession{
		UserID:    userID,
		RoomID:    roomID,
		Date:      date,
		State:     selection.Reconstruct(selection.Phase(phase), int(firstIndex), toIntSlice(indices)),
		Catalog:   catalog,
		SheetHash: sheetHash,
		MinUnit:   int(minUnit),
		UpdatedAt: updatedAt,
	}, nil
}

const deleteSessionSQL = `
DELETE FROM selection_sessions
WHERE user_id = $1 AND room_id = $2 AND sheet_date = $3`

func (r *SessionRepository) Delete(ctx context.Context, userID uuid.UUID, roomID int64, date time.Time) error {
	_, err := r.db.Exec(ctx, deleteSessionSQL,
		pgconv.UUIDToPgtype(userID), roomID, pgconv.DateToPgtype(date))
	if err != nil {
		return infra.WrapRepoErr("failed to delete selection session", err)
	}
	return nil
}

const deleteStaleSessionsSQL = `
DELETE FROM selection_sessions WHERE updated_at < $1`

// DeleteStale drops sessions untouched since the cutoff. Sessions are
// screen state, not bookings, so there is nothing to keep long term.
func (r *SessionRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteStaleSessionsSQL, pgconv.TimeToPgtype(cutoff))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete stale selection sessions", err)
	}
	return tag.RowsAffected(), nil
}

func toInt32Slice(in []int) []int32 {
	out := make([]int32, len(in))
	for i, v := range in {
		out[i] = int32(v)
	}
	return out
}

func toIntSlice(in []int32) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v)
	}
	return out
}
