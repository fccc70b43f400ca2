// Package backendapi is the client for the sportify backend REST API, the
// mirror image of the backend's own bot client.
package backendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient takes the backend api base URL, e.g. http://backend:8080/api/v1.
func NewClient(baseURL string) *Client {
	return &Client{
		client:  http.DefaultClient,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (c *Client) do(ctx context.Context, method, path string, request any) ([]byte, error) {
	var bodyReader io.Reader

	if request != nil {
		body, err := json.Marshal(request)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}

		bodyReader = bytes.NewBuffer(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if request != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("bad status code: %d", resp.StatusCode)
	}

	return respBody, nil
}

type requestLoginUser struct {
	Token    string `json:"token"`
	TgID     int64  `json:"tg_id"`
	Username string `json:"username"`
}

// LoginUser forwards a /start deep-link token together with the invoking
// user's identity to the backend registration endpoint.
func (c *Client) LoginUser(ctx context.Context, token string, tgID int64, username string) error {
	_, err := c.do(ctx, http.MethodPost, "/users", requestLoginUser{
		Token:    token,
		TgID:     tgID,
		Username: username,
	})
	if err != nil {
		return fmt.Errorf("login user: %w", err)
	}

	return nil
}

type requestEnsureUser struct {
	TgID     int64  `json:"tg_id"`
	Username string `json:"username"`
}

// EnsureUser makes sure the backend has a user record for the Telegram user.
func (c *Client) EnsureUser(ctx context.Context, tgID int64, username string) error {
	_, err := c.do(ctx, http.MethodPost, "/raw/users", requestEnsureUser{
		TgID:     tgID,
		Username: username,
	})
	if err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}

	return nil
}

type responseIsSubscribed struct {
	IsSubscribed bool `json:"is_subscribed"`
}

func (c *Client) IsSubscribed(ctx context.Context, eventID string, tgID int64) (bool, error) {
	path := "/events/" + eventID + "/subscribers?tg_id=" + strconv.FormatInt(tgID, 10)

	respBody, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return false, fmt.Errorf("is subscribed: %w", err)
	}

	var response responseIsSubscribed
	if err := json.Unmarshal(respBody, &response); err != nil {
		return false, fmt.Errorf("is subscribed: unmarshal response: %w", err)
	}

	return response.IsSubscribed, nil
}

type requestSubscribeEvent struct {
	SubscribeFlag bool  `json:"sub"`
	TgID          int64 `json:"tg_id"`
}

func (c *Client) SubscribeEvent(ctx context.Context, eventID string, tgID int64, subscribe bool) error {
	path := "/events/" + eventID + "/subscribers"

	_, err := c.do(ctx, http.MethodPut, path, requestSubscribeEvent{
		SubscribeFlag: subscribe,
		TgID:          tgID,
	})
	if err != nil {
		return fmt.Errorf("subscribe event: %w", err)
	}

	return nil
}
