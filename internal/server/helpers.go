package server

import (
	"io"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func writeError(c *echo.Context, status int, errType, msg string) error {
	return c.JSON(status, map[string]any{
		"error": ErrorBody{
			Type:    errType,
			Message: msg,
		},
	})
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	dec := json.NewDecoder(r)
	if err := dec.Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}
