package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	ErrNotLoggedIn = errors.New("not logged in")
	ErrRedirect    = errors.New("redirect to home")
)

// APIError - любой ответ API со статусом вне 2xx.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Detail)
}

// IsStatus проверяет, что err - APIError с указанным HTTP статусом.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{
		Status: resp.StatusCode,
		Detail: http.StatusText(resp.StatusCode),
	}

	var body struct {
		Detail string `json:"detail"`
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && json.Unmarshal(raw, &body) == nil && body.Detail != "" {
		apiErr.Detail = body.Detail
	}
	return apiErr
}
