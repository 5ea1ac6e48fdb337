package cancelservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с внешним сервисом отмен
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса отмен
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Cancel отправляет запрос на отмену бронирования
//
// requestID передается в заголовке X-Request-ID и используется сервисом отмен
// для дедупликации: повтор после сетевой ошибки обязан идти с тем же requestID
func (c *Client) Cancel(ctx context.Context, requestID string, req *CancelRequest) (*Receipt, error) {
	url := fmt.Sprintf("%s/internal/cancellations", c.baseURL)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	c.log.Info("Cancel: submitting cancellation booking_id=%d, request_id=%s, refund_amount=%.2f",
		req.BookingID, requestID, req.RefundAmount)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Error("Cancel: request failed for booking_id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrServiceUnavailable, resp.StatusCode, string(raw))
	}

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if !envelope.Success {
		c.log.Warn("Cancel: cancellation rejected for booking_id=%d: %s", req.BookingID, envelope.Message)
		return nil, fmt.Errorf("%w: %s", ErrRejected, envelope.Message)
	}

	if envelope.Data == nil {
		return nil, fmt.Errorf("%w: success response without data", ErrInvalidResponse)
	}

	c.log.Info("Cancel: cancellation accepted for booking_id=%d, refund=%.2f, fee=%.2f, type=%s",
		req.BookingID, envelope.Data.RefundAmount, envelope.Data.CancellationFee, envelope.Data.RefundType)

	return envelope.Data, nil
}
