package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
	tokens  *TokenStore
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

func New(baseURL string, tokens *TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		tokens:  tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session возвращает сохраненную сессию. loggedIn - наличие токена,
// роль всегда заново декодируется из токена.
func (c *Client) Session() (Session, bool) {
	sess, err := c.tokens.Load()
	if err != nil {
		return Session{}, false
	}
	role, _ := RoleFromToken(sess.AccessToken)
	sess.Role = role
	return sess, true
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login сохраняет токен и роль из него в TokenStore.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return Session{}, err
	}

	sess := Session{AccessToken: resp.AccessToken}
	sess.Role, _ = RoleFromToken(resp.AccessToken)

	if err := c.tokens.Save(sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (c *Client) Logout() error {
	return c.tokens.Clear()
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := c.do(ctx, http.MethodGet, "/api/admin/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) MyDeliveries(ctx context.Context) ([]Delivery, error) {
	return c.list(ctx, "/api/delivery/")
}

func (c *Client) CreateDelivery(ctx context.Context, create DeliveryCreate) (*Delivery, error) {
	var d Delivery
	if err := c.do(ctx, http.MethodPost, "/api/delivery/", create, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *Client) Delivery(ctx context.Context, id int64) (*Delivery, error) {
	var d Delivery
	if err := c.do(ctx, http.MethodGet, deliveryPath(id, ""), nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *Client) ConfirmDelivery(ctx context.Context, id int64) (*Delivery, error) {
	return c.transition(ctx, id, "confirm")
}

func (c *Client) AvailableTasks(ctx context.Context) ([]Delivery, error) {
	return c.list(ctx, "/api/delivery/available-tasks")
}

func (c *Client) MyTasks(ctx context.Context) ([]Delivery, error) {
	return c.list(ctx, "/api/delivery/my")
}

func (c *Client) AcceptTask(ctx context.Context, id int64) (*Delivery, error) {
	return c.transition(ctx, id, "accept")
}

func (c *Client) StartTask(ctx context.Context, id int64) (*Delivery, error) {
	return c.transition(ctx, id, "start")
}

func (c *Client) MarkDelivered(ctx context.Context, id int64) (*Delivery, error) {
	return c.transition(ctx, id, "mark-delivered")
}

func (c *Client) FailTask(ctx context.Context, id int64) (*Delivery, error) {
	return c.transition(ctx, id, "fail")
}

func (c *Client) Pay(ctx context.Context, id int64) (*PaymentReceipt, error) {
	var receipt PaymentReceipt
	if err := c.do(ctx, http.MethodPost, deliveryPath(id, "pay"), nil, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (c *Client) Release(ctx context.Context, id int64) (*Delivery, error) {
	return c.transition(ctx, id, "release")
}

func (c *Client) list(ctx context.Context, path string) ([]Delivery, error) {
	var list []Delivery
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) transition(ctx context.Context, id int64, action string) (*Delivery, error) {
	var d Delivery
	if err := c.do(ctx, http.MethodPost, deliveryPath(id, action), nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func deliveryPath(id int64, action string) string {
	path := "/api/delivery/" + strconv.FormatInt(id, 10)
	if action != "" {
		path += "/" + action
	}
	return path
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// без сессии запрос уходит анонимным, сервер сам ответит 401
	sess, err := c.tokens.Load()
	switch {
	case err == nil:
		req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	case !errors.Is(err, ErrNotLoggedIn):
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newAPIError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
