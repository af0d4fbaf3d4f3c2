package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"studiobook/internal/pkg/config"
	"studiobook/internal/pkg/errs"
)

const dateFormat = "2006-01-02"

// Client talks to the studio platform API, the system of record for
// rooms, reservations and payments. One method per remote operation;
// callers own sequencing and retries.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(cfg config.UpstreamConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// GetRoomSlots fetches the raw availability list for one room/date.
func (c *Client) GetRoomSlots(ctx context.Context, roomID int64, date time.Time) ([]SlotDTO, error) {
	path := fmt.Sprintf("/internal/rooms/%d/slots?date=%s", roomID, date.Format(dateFormat))

	var resp slotSheetResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Slots, nil
}

// GetPricingPolicy fetches the per-time price table for one room/date.
func (c *Client) GetPricingPolicy(ctx context.Context, roomID int64, date time.Time) (*PricingPolicyDTO, error) {
	path := fmt.Sprintf("/internal/rooms/%d/pricing?date=%s", roomID, date.Format(dateFormat))

	var resp PricingPolicyDTO
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateReservation reserves the exact slot range and returns the
// platform reservation id plus its price figure.
func (c *Client) CreateReservation(ctx context.Context, roomID int64, date time.Time, times []string) (*CreatedReservationDTO, error) {
	body := createReservationRequest{
		RoomID:        roomID,
		Date:          date.Format(dateFormat),
		SelectedTimes: times,
	}

	var resp CreatedReservationDTO
	if err := c.do(ctx, http.MethodPost, "/internal/reservations", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AttachProducts(ctx context.Context, reservationID int64, products []ProductQuantityDTO) error {
	path := fmt.Sprintf("/internal/reservations/%d/products", reservationID)
	return c.do(ctx, http.MethodPost, path, attachProductsRequest{Products: products}, nil)
}

func (c *Client) AttachUserInfo(ctx context.Context, reservationID int64, name, phone string, extra map[string]string) error {
	path := fmt.Sprintf("/internal/reservations/%d/user-info", reservationID)
	body := attachUserInfoRequest{Name: name, Phone: phone, ExtraFields: extra}
	return c.do(ctx, http.MethodPost, path, body, nil)
}

// ConfirmReservation finalizes the reservation; the returned total is
// the authoritative amount for payment.
func (c *Client) ConfirmReservation(ctx context.Context, reservationID int64) (*ConfirmedReservationDTO, error) {
	path := fmt.Sprintf("/internal/reservations/%d/confirm", reservationID)

	var resp ConfirmedReservationDTO
	if err := c.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetReservation(ctx context.Context, reservationID int64) (*ReservationDetailDTO, error) {
	path := fmt.Sprintf("/internal/reservations/%d", reservationID)

	var resp ReservationDetailDTO
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CancelReservation(ctx context.Context, reservationID int64) (*CancelResultDTO, error) {
	path := fmt.Sprintf("/internal/reservations/%d/cancel", reservationID)

	var resp CancelResultDTO
	if err := c.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errs.Wrap(err, "failed to encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errs.Mark(errs.Wrap(err, "failed to create request"), ErrUnavailable)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("platform api request failed", "method", method, "path", path, "error", err.Error())
		return errs.Mark(errs.Wrap(err, "request failed"), ErrUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// fall through to decoding
	case resp.StatusCode == http.StatusNotFound:
		return errs.Mark(errs.Newf("%s %s: not found", method, path), ErrNotFound)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return c.rejectionError(method, path, resp)
	default:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.logger.Error("platform api server error",
			"method", method, "path", path, "status", resp.StatusCode, "body", string(raw))
		return errs.Mark(errs.Newf("%s %s: status %d", method, path, resp.StatusCode), ErrUnavailable)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.Mark(errs.Wrap(err, "failed to decode response"), ErrUnavailable)
	}
	return nil
}

// RejectionError carries the platform's own business message so handlers
// can surface it to the user verbatim.
type RejectionError struct {
	Message string
	Code    string
}

func (e *RejectionError) Error() string {
	if e.Code != "" {
		return e.Code + ": " + e.Message
	}
	return e.Message
}

func (c *Client) rejectionError(method, path string, resp *http.Response) error {
	var apiErr apiErrorResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Message != nil && *apiErr.Message != "" {
		rejection := &RejectionError{Message: *apiErr.Message}
		if apiErr.Code != nil {
			rejection.Code = *apiErr.Code
		}
		return errs.Mark(rejection, ErrRejected)
	}
	return errs.Mark(errs.Newf("%s %s: status %d", method, path, resp.StatusCode), ErrRejected)
}

// RejectionMessage extracts the platform message from an ErrRejected
// chain, or falls back to the given default.
func RejectionMessage(err error, fallback string) string {
	var rejection *RejectionError
	if errors.As(err, &rejection) && rejection.Message != "" {
		return rejection.Message
	}
	return fallback
}
