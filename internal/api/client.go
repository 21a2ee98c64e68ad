// Package api is the typed HTTP client for the listings backend.
//
// The backend is an external collaborator; this package only knows the
// request/response contracts (items CRUD plus login/logout) and converts
// non-2xx responses into *APIError values the UI can classify.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"board-cli/internal/model"
)

type Client struct {
	base string
	http *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		base: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// APIError is a non-2xx backend response. Message carries the server-provided
// error text when the body had one; Status is the HTTP status code.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: unexpected status %d", e.Status)
}

// ListItems fetches every listing; filtering and pagination are client-side.
func (c *Client) ListItems(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	if err := c.do(ctx, http.MethodGet, "/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetItem(ctx context.Context, id int) (model.Item, error) {
	var it model.Item
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/items/%d", id), nil, &it); err != nil {
		return model.Item{}, err
	}
	return it, nil
}

func (c *Client) CreateItem(ctx context.Context, draft model.ItemDraft) (model.Item, error) {
	var it model.Item
	if err := c.do(ctx, http.MethodPost, "/items", draft, &it); err != nil {
		return model.Item{}, err
	}
	return it, nil
}

func (c *Client) UpdateItem(ctx context.Context, id int, draft model.ItemDraft) (model.Item, error) {
	var it model.Item
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/items/%d", id), draft, &it); err != nil {
		return model.Item{}, err
	}
	return it, nil
}

func (c *Client) DeleteItem(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/items/%d", id), nil, nil)
}

// Login exchanges credentials for an opaque session token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	in := map[string]string{"username": username, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", in, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: serverMessage(resp.Body)}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// serverMessage extracts {"error": "..."} (or {"message": "..."}) from an
// error body. Best effort: an unreadable or non-JSON body yields "".
func serverMessage(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(b, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}
