package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с CatalogService (пакеты, аттракционы, цены)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CatalogService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetPackage получает пакет с базовой ценой и списком комнат
func (c *Client) GetPackage(ctx context.Context, packageID int64) (*Package, error) {
	url := fmt.Sprintf("%s/internal/packages/%d", c.baseURL, packageID)

	var pkg Package
	if err := c.getJSON(ctx, url, ErrPackageNotFound, &pkg); err != nil {
		if err != ErrPackageNotFound {
			c.log.Error("CatalogService GetPackage failed for package_id=%d: %v", packageID, err)
		}
		return nil, err
	}

	return &pkg, nil
}

// GetAttraction получает аттракцион с базовой ценой
func (c *Client) GetAttraction(ctx context.Context, attractionID int64) (*Attraction, error) {
	url := fmt.Sprintf("%s/internal/attractions/%d", c.baseURL, attractionID)

	var attraction Attraction
	if err := c.getJSON(ctx, url, ErrAttractionNotFound, &attraction); err != nil {
		if err != ErrAttractionNotFound {
			c.log.Error("CatalogService GetAttraction failed for attraction_id=%d: %v", attractionID, err)
		}
		return nil, err
	}

	return &attraction, nil
}

func (c *Client) getJSON(ctx context.Context, url string, notFound error, out any) error {
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
	case http.StatusBadRequest:
		return fmt.Errorf("%w: invalid ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
