package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/exp/slog"

	"qrkeeper/internal/app/client/config"
	"qrkeeper/internal/domain/qrcode"
	"qrkeeper/internal/domain/user"
)

// API - то, что клиенту нужно от сервера.
type API interface {
	HealthCheck(ctx context.Context) error
	Register(ctx context.Context, login, password string) error
	Login(ctx context.Context, login, password string) (string, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (user.Profile, error)
	SaveName(ctx context.Context, name string) (user.Profile, error)
	Generate(ctx context.Context, req qrcode.GenerateRequest) (GenerateResponse, error)
	ListQRCodes(ctx context.Context) ([]qrcode.ListItem, error)
	GetQRCode(ctx context.Context, id string) (qrcode.ListItem, error)
	UpdateDestination(ctx context.Context, id, destination string) (qrcode.ListItem, error)
	ContentTypes(ctx context.Context) ([]ContentTypeInfo, error)
	FetchImage(ctx context.Context, ref string) ([]byte, string, error)
	SetToken(token string)
}

type GenerateResponse struct {
	qrcode.GenerateResult
	Link string `json:"link"`
}

type ContentTypeInfo struct {
	Value       qrcode.ContentType `json:"value"`
	DisplayName string             `json:"display_name"`
	Placeholder string             `json:"placeholder"`
}

// APIError - ответ сервера со статусом >= 400.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("ошибка сервера: статус %d", e.Status)
	}
	return fmt.Sprintf("ошибка сервера: %s", e.Detail)
}

type httpClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	token     string
	userAgent string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) *httpClient {
	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	return &httpClient{
		client:    client,
		log:       log.With("component", "http_client"),
		baseURL:   cfg.BaseURL(),
		userAgent: "QRKeeper-Client/1.0",
	}
}

// SetToken устанавливает токен аутентификации
func (h *httpClient) SetToken(token string) {
	h.token = token
}

// HealthCheck проверяет доступность сервера
func (h *httpClient) HealthCheck(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/health", nil)
	if err != nil {
		return fmt.Errorf("сервер недоступен: %w", err)
	}
	return h.parseResponse(resp, nil)
}

func (h *httpClient) Register(ctx context.Context, login, password string) error {
	resp, err := h.doRequest(ctx, http.MethodPost, "/api/v1/user/register", user.BaseRequest{
		Login:    login,
		Password: password,
	})
	if err != nil {
		return err
	}
	err = h.parseResponse(resp, nil)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict {
		return user.ErrLoginTaken
	}
	return err
}

func (h *httpClient) Login(ctx context.Context, login, password string) (string, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, "/api/v1/user/login", user.BaseRequest{
		Login:    login,
		Password: password,
	})
	if err != nil {
		return "", err
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	if err := h.parseResponse(resp, &loginResp); err != nil {
		return "", err
	}

	h.SetToken(loginResp.Token)
	return loginResp.Token, nil
}

func (h *httpClient) Logout(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodPost, "/api/v1/user/logout", nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

func (h *httpClient) Profile(ctx context.Context) (user.Profile, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/user/profile", nil)
	if err != nil {
		return user.Profile{}, err
	}
	var p user.Profile
	err = h.parseResponse(resp, &p)
	return p, err
}

func (h *httpClient) SaveName(ctx context.Context, name string) (user.Profile, error) {
	resp, err := h.doRequest(ctx, http.MethodPut, "/api/v1/user/profile", user.SaveNameRequest{Name: name})
	if err != nil {
		return user.Profile{}, err
	}
	var p user.Profile
	err = h.parseResponse(resp, &p)
	return p, err
}

func (h *httpClient) Generate(ctx context.Context, req qrcode.GenerateRequest) (GenerateResponse, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, "/api/v1/qrcodes", req)
	if err != nil {
		return GenerateResponse{}, err
	}
	var out GenerateResponse
	err = h.parseResponse(resp, &out)
	return out, err
}

func (h *httpClient) ListQRCodes(ctx context.Context) ([]qrcode.ListItem, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/qrcodes", nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		Items []qrcode.ListItem `json:"items"`
	}
	if err := h.parseResponse(resp, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (h *httpClient) GetQRCode(ctx context.Context, id string) (qrcode.ListItem, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/qrcodes/"+url.PathEscape(id), nil)
	if err != nil {
		return qrcode.ListItem{}, err
	}
	var out qrcode.ListItem
	err = h.parseResponse(resp, &out)
	return out, err
}

func (h *httpClient) UpdateDestination(ctx context.Context, id, destination string) (qrcode.ListItem, error) {
	body := struct {
		DestinationURL string `json:"destination_url"`
	}{DestinationURL: destination}

	resp, err := h.doRequest(ctx, http.MethodPatch, "/api/v1/qrcodes/"+url.PathEscape(id)+"/destination", body)
	if err != nil {
		return qrcode.ListItem{}, err
	}
	var out qrcode.ListItem
	err = h.parseResponse(resp, &out)
	return out, err
}

func (h *httpClient) ContentTypes(ctx context.Context) ([]ContentTypeInfo, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/content-types", nil)
	if err != nil {
		return nil, err
	}
	var out []ContentTypeInfo
	err = h.parseResponse(resp, &out)
	return out, err
}

// FetchImage скачивает логотип по ImageRef. Токен не отправляется: это чужой хост.
func (h *httpClient) FetchImage(ctx context.Context, ref string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка загрузки логотипа: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("логотип недоступен: статус %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, qrcode.MaxLogoBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("ошибка чтения логотипа: %w", err)
	}
	if len(data) > qrcode.MaxLogoBytes {
		return nil, "", fmt.Errorf("логотип больше %d байт", qrcode.MaxLogoBytes)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func (h *httpClient) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	h.log.Debug("Отправка запроса",
		"method", method,
		"url", req.URL.String(),
	)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	return resp, nil
}

func (h *httpClient) parseResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	h.log.Debug("Получен ответ",
		"status", resp.StatusCode,
		"bytes", len(body),
	)

	if resp.StatusCode >= 400 {
		return responseError(resp.StatusCode, body)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("ошибка парсинга ответа: %w", err)
		}
	}

	return nil
}

// responseError разбирает тело ошибки huma (detail) или middleware (error)
// и переводит статус обратно в вид ошибки qrcode.
func responseError(status int, body []byte) error {
	var errResp struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	apiErr := &APIError{Status: status}
	if err := json.Unmarshal(body, &errResp); err == nil {
		apiErr.Detail = errResp.Detail
		if apiErr.Detail == "" {
			apiErr.Detail = errResp.Error
		}
	}

	var kind error
	switch status {
	case http.StatusUnprocessableEntity, http.StatusBadRequest:
		kind = qrcode.ErrInvalidInput
	case http.StatusUnauthorized:
		kind = qrcode.ErrUnauthenticated
	case http.StatusNotFound:
		kind = qrcode.ErrNotFound
	case http.StatusConflict:
		kind = qrcode.ErrNotDynamic
	case http.StatusBadGateway:
		kind = qrcode.ErrUpload
	default:
		kind = qrcode.ErrPersistence
	}
	return &qrcode.Error{Op: "api", Kind: kind, Err: apiErr}
}
