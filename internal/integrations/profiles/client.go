package profiles

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с ProfileService
// Движок бронирований использует его только для адресации уведомлений:
// недоступность сервиса профилей не является ошибкой бизнес-операции
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента ProfileService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetDoctor получает профиль врача по ID
func (c *Client) GetDoctor(ctx context.Context, doctorID int64) (*Doctor, error) {
	url := fmt.Sprintf("%s/internal/doctors/%d", c.baseURL, doctorID)

	var doctor Doctor
	if err := c.get(ctx, url, &doctor, ErrDoctorNotFound); err != nil {
		return nil, err
	}

	return &doctor, nil
}

// GetPatient получает профиль пациента по ID
func (c *Client) GetPatient(ctx context.Context, patientID int64) (*Patient, error) {
	url := fmt.Sprintf("%s/internal/patients/%d", c.baseURL, patientID)

	var patient Patient
	if err := c.get(ctx, url, &patient, ErrPatientNotFound); err != nil {
		return nil, err
	}

	return &patient, nil
}

// get выполняет GET запрос и декодирует ответ
func (c *Client) get(ctx context.Context, url string, out interface{}, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
