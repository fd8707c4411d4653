package client

//go:generate go run go.uber.org/mock/mockgen -source=./api.go -destination=./mocks/api_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"todoapp/config"
	"todoapp/shared/constant"
	"todoapp/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	defaultBaseURL = "http://localhost:8080/v1"
	defaultTimeout = 10 * time.Second

	pathTodos = "/todos"
)

// API is the todo endpoint set the client talks to.
type API interface {
	List(ctx context.Context) ([]Item, error)
	Create(ctx context.Context, item Item) (Item, error)
	Replace(ctx context.Context, item Item) (Item, error)
	SetCompleted(ctx context.Context, id string, completed bool) (Item, error)
	Delete(ctx context.Context, id string) error
}

// TransportError means no usable API answer arrived: the request failed on
// the wire or the response was not an envelope.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type envelope struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Errors  map[string][]string `json:"errors"`
}

type httpAPI struct {
	client  *http.Client
	baseURL string
}

// NewHTTP builds an API client from the client section of the config.
func NewHTTP(cfg *config.Config) API {
	timeout := defaultTimeout
	if cfg.Client.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.Client.TimeoutSeconds) * time.Second
	}

	baseURL := cfg.Client.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return NewHTTPWithClient(baseURL, &http.Client{Timeout: timeout})
}

func NewHTTPWithClient(baseURL string, client *http.Client) API {
	return &httpAPI{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// List fetches every todo regardless of completion. Views are derived locally.
func (a *httpAPI) List(ctx context.Context) ([]Item, error) {
	items := []Item{}

	err := a.do(ctx, http.MethodGet, pathTodos+"?completed=all", nil, &items)
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (a *httpAPI) Create(ctx context.Context, item Item) (Item, error) {
	created := Item{}

	err := a.do(ctx, http.MethodPost, pathTodos, item, &created)

	return created, err
}

func (a *httpAPI) Replace(ctx context.Context, item Item) (Item, error) {
	updated := Item{}

	err := a.do(ctx, http.MethodPut, todoPath(item.ID), item, &updated)

	return updated, err
}

func (a *httpAPI) SetCompleted(ctx context.Context, id string, completed bool) (Item, error) {
	action := "/incomplete"
	if completed {
		action = "/complete"
	}

	updated := Item{}

	err := a.do(ctx, http.MethodPost, todoPath(id)+action, nil, &updated)

	return updated, err
}

func (a *httpAPI) Delete(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodDelete, todoPath(id), nil, nil)
}

func (a *httpAPI) do(ctx context.Context, method, path string, body, out any) error {
	op := method + " " + path

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Op: op, Err: err}
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	req.Header.Set(constant.RequestHeaderAccept, constant.ContentTypeJSON)

	if body != nil {
		req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	env := envelope{}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("status %d: undecodable response: %w", resp.StatusCode, err)}
	}

	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		log.Debug().Str("op", op).Int("status", resp.StatusCode).Str("error", env.Error).Msg("API rejected request")

		return apiFailure(resp.StatusCode, env)
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("undecodable data: %w", err)}
	}

	return nil
}

// apiFailure turns an error envelope back into the failure the server raised.
func apiFailure(code int, env envelope) error {
	if len(env.Errors) > 0 {
		return failure.Validation(env.Errors) //nolint:wrapcheck
	}

	msg := env.Error
	if msg == "" {
		msg = http.StatusText(code)
	}

	return failure.New(code, msg) //nolint:wrapcheck
}

func todoPath(id string) string {
	return pathTodos + "/" + url.PathEscape(id)
}
