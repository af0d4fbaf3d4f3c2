package upstream

import "studiobook/internal/pkg/errs"

// The usecase layer distinguishes three failure shapes (spec-level
// taxonomy): transport trouble, platform business rejections, and
// not-found. No automatic retries happen at this layer; every retry is
// user-initiated.
var (
	// ErrUnavailable covers connectivity failures, timeouts and 5xx.
	ErrUnavailable = errs.New("platform api unavailable")
	// ErrRejected covers 4xx business rejections; the platform message
	// is wrapped so handlers can surface it.
	ErrRejected = errs.New("platform api rejected the request")
	// ErrNotFound maps 404 for rooms and reservations.
	ErrNotFound = errs.New("platform resource not found")
)
