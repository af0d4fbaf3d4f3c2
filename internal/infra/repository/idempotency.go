package repository

import (
	"context"
	"time"

	"studiobook/internal/infra"
	"studiobook/internal/infra/db"
	"studiobook/internal/pkg/pgconv"
	"studiobook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type IdempotencyRepository struct {
	db *pgxpool.Pool
}

func NewIdempotencyRepository(pool *pgxpool.Pool) *IdempotencyRepository {
	return &IdempotencyRepository{db: pool}
}

const tryInsertIdempotencySQL = `
INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at)
VALUES ($1, $2, $3, $4, 'processing', $5)
ON CONFLICT (key, user_id) DO NOTHING`

// TryInsert claims the key. It reports false when the key already
// exists, which is the replay signal the caller switches on.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, tryInsertIdempotencySQL,
		pgconv.UUIDToPgtype(key),
		pgconv.UUIDToPgtype(userID),
		endpoint,
		requestHash,
		pgconv.TimeToPgtype(expiresAt),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to try insert idempotency key", err)
	}
	return tag.RowsAffected() == 1, nil
}

const getIdempotencySQL = `
SELECT status, request_hash, result_draft_id, expires_at
FROM idempotency_keys
WHERE key = $1 AND user_id = $2`

func (r *IdempotencyRepository) Get(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	var (
		status        string
		requestHash   string
		resultDraftID pgtype.UUID
		expiresAt     time.Time
	)

	row := r.db.QueryRow(ctx, getIdempotencySQL,
		pgconv.UUIDToPgtype(key), pgconv.UUIDToPgtype(userID))
	if err := row.Scan(&status, &requestHash, &resultDraftID, &expiresAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}

	return &shared.IdempotencyRecord{
		Key:           key,
		UserID:        userID,
		Status:        status,
		RequestHash:   requestHash,
		ResultDraftID: pgconv.UUIDPtrFromPgtype(resultDraftID),
		ExpiresAt:     expiresAt,
	}, nil
}

const updateIdempotencyCompletedSQL = `
UPDATE idempotency_keys
SET status = 'completed', response_body_hash = $1, result_draft_id = $2
WHERE key = $3 AND user_id = $4`

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, responseBodyHash string, resultDraftID uuid.UUID) error {
	_, err := tx.Exec(ctx, updateIdempotencyCompletedSQL,
		pgconv.StringToPgtype(responseBodyHash),
		pgconv.UUIDToPgtype(resultDraftID),
		pgconv.UUIDToPgtype(key),
		pgconv.UUIDToPgtype(userID),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update idempotency key status", err)
	}
	return nil
}

const deleteIdempotencySQL = `
DELETE FROM idempotency_keys WHERE key = $1 AND user_id = $2`

// Delete releases a claimed key so the same key can be retried after a
// failed creation.
func (r *IdempotencyRepository) Delete(ctx context.Context, key, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, deleteIdempotencySQL,
		pgconv.UUIDToPgtype(key), pgconv.UUIDToPgtype(userID))
	if err != nil {
		return infra.WrapRepoErr("failed to delete idempotency key", err)
	}
	return nil
}

const deleteExpiredIdempotencySQL = `
DELETE FROM idempotency_keys WHERE expires_at < now()`

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteExpiredIdempotencySQL)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}
	return tag.RowsAffected(), nil
}
