package repository

import (
	"context"
	"errors"
	"time"

	"studiobook/internal/domain/reservation"
	"studiobook/internal/infra"
	"studiobook/internal/infra/db"
	"studiobook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var errNoRowsAffected = errors.New("no rows affected")

// DraftRepository stores the gateway-side mirror of each platform
// reservation while it walks the commit flow. The platform holds the
// booking itself; the draft remembers which step the user reached so
// an interrupted flow can resume at the right screen.
type DraftRepository struct {
	db *pgxpool.Pool
}

func NewDraftRepository(pool *pgxpool.Pool) *DraftRepository {
	return &DraftRepository{db: pool}
}

const createDraftSQL = `
INSERT INTO reservation_drafts (
    id, reservation_id, user_id, room_id, place_id, sheet_date,
    times, min_unit, server_price, estimated_price, step,
    created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

func (r *DraftRepository) Create(ctx context.Context, tx db.DBTX, d *reservation.Draft) error {
	_, err := tx.Exec(ctx, createDraftSQL,
		pgconv.UUIDToPgtype(d.ID()),
		d.ReservationID(),
		pgconv.UUIDToPgtype(d.UserID()),
		d.RoomID(),
		d.PlaceID(),
		pgconv.DateToPgtype(d.Date()),
		d.Times(),
		int32(d.MinUnit()),
		d.ServerPrice(),
		d.EstimatedPrice(),
		string(d.Step()),
		pgconv.TimeToPgtype(d.CreatedAt()),
		pgconv.TimeToPgtype(d.UpdatedAt()),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("draft already exists for reservation", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create reservation draft", err)
	}
	return nil
}

const updateDraftStepSQL = `
UPDATE reservation_drafts
SET step = $1, server_price = $2, updated_at = $3
WHERE id = $4 AND user_id = $5`

func (r *DraftRepository) Update(ctx context.Context, tx db.DBTX, d *reservation.Draft) error {
	tag, err := tx.Exec(ctx, updateDraftStepSQL,
		string(d.Step()),
		d.ServerPrice(),
		pgconv.TimeToPgtype(d.UpdatedAt()),
		pgconv.UUIDToPgtype(d.ID()),
		pgconv.UUIDToPgtype(d.UserID()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation draft", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation draft not found", errNoRowsAffected, infra.KindNotFound)
	}
	return nil
}

const findDraftSQL = `
SELECT id, reservation_id, user_id, room_id, place_id, sheet_date,
       times, min_unit, server_price, estimated_price, step,
       created_at, updated_at
FROM reservation_drafts
WHERE id = $1 AND user_id = $2`

func (r *DraftRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*reservation.Draft, error) {
	row := r.db.QueryRow(ctx, findDraftSQL,
		pgconv.UUIDToPgtype(id), pgconv.UUIDToPgtype(userID))
	return scanDraft(row)
}

const listDraftsSQL = `
SELECT id, reservation_id, user_id, room_id, place_id, sheet_date,
       times, min_unit, server_price, estimated_price, step,
       created_at, updated_at
FROM reservation_drafts
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2`

func (r *DraftRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int32) ([]*reservation.Draft, error) {
	rows, err := r.db.Query(ctx, listDraftsSQL, pgconv.UUIDToPgtype(userID), limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservation drafts", err)
	}
	defer rows.Close()

	var drafts []*reservation.Draft
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation drafts", err)
	}
	return drafts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDraft(row rowScanner) (*reservation.Draft, error) {
	var (
		id             uuid.UUID
		reservationID  int64
		userID         uuid.UUID
		roomID         int64
		placeID        int64
		sheetDate      time.Time
		times          []string
		minUnit        int32
		serverPrice    int64
		estimatedPrice int64
		step           string
		createdAt      time.Time
		updatedAt      time.Time
	)

	err := row.Scan(&id, &reservationID, &userID, &roomID, &placeID, &sheetDate,
		&times, &minUnit, &serverPrice, &estimatedPrice, &step, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation draft not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan reservation draft", err)
	}

	return reservation.ReconstructDraft(
		id, reservationID, userID, roomID, placeID, sheetDate,
		times, int(minUnit), serverPrice, estimatedPrice,
		reservation.Step(step), createdAt, updatedAt,
	), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
