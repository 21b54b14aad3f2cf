package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errTestForbidden = errors.New("forbidden")
	errTestNotFound  = errors.New("not found")
)

func performErrorRequest(t *testing.T, err error, mappings ...errStatus) (*http.Response, map[string]string) {
	t.Helper()

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return respondError(c, err, mappings...)
	})

	resp, reqErr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, reqErr)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestRespondError_MapsSentinels(t *testing.T) {
	err := fmt.Errorf("%w: You already voted.", errTestForbidden)

	resp, body := performErrorRequest(t, err,
		errStatus{errTestForbidden, fiber.StatusForbidden},
		errStatus{errTestNotFound, fiber.StatusNotFound},
	)

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "You already voted.", body["error"])
}

func TestRespondError_UnmappedIs500(t *testing.T) {
	resp, body := performErrorRequest(t, errors.New("database exploded"),
		errStatus{errTestForbidden, fiber.StatusForbidden},
	)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal server error", body["error"])
}

func TestRespondError_SecondMappingWins(t *testing.T) {
	err := fmt.Errorf("%w: poll not found", errTestNotFound)

	resp, body := performErrorRequest(t, err,
		errStatus{errTestForbidden, fiber.StatusForbidden},
		errStatus{errTestNotFound, fiber.StatusNotFound},
	)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "poll not found", body["error"])
}
