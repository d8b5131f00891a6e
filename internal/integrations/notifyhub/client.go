package notifyhub

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifyhub client: internal error")

	// ErrPushFailed возвращается, когда шлюз не принял уведомление
	ErrPushFailed = errors.New("notifyhub client: push rejected by gateway")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// pushRequest полезная нагрузка real-time push
type pushRequest struct {
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
}

// Client клиент real-time шлюза уведомлений
// Доставка fire-and-forget: ошибка push логируется вызывающей стороной
// и никогда не влияет на результат бизнес-операции
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента шлюза уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Push отправляет уведомление пользователю через real-time шлюз
func (c *Client) Push(ctx context.Context, userID int64, message string) error {
	url := fmt.Sprintf("%s/internal/push", c.baseURL)

	body, err := json.Marshal(pushRequest{UserID: userID, Message: message})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal push request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("%w: status code %d", ErrPushFailed, resp.StatusCode)
	}

	return nil
}
