package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	deliverycontext "jobboard/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// invokeRequestID runs the middleware against a request carrying the given
// X-Request-Id header and reports the recorder plus the echo context the
// wrapped handler observed.
func invokeRequestID(t *testing.T, logger *slog.Logger, inboundID string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	if inboundID != "" {
		req.Header.Set(deliverycontext.HeaderXRequestID, inboundID)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen echo.Context
	handler := NewRequestIDMiddleware(logger).Process(func(c echo.Context) error {
		seen = c

		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))

	return rec, seen
}

func TestRequestIDMiddleware_HonorsInboundID(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	rec, c := invokeRequestID(t, logger, "caller-supplied-id")

	assert.Equal(t, "caller-supplied-id", rec.Header().Get(deliverycontext.HeaderXRequestID))
	assert.Equal(t, "caller-supplied-id", deliverycontext.GetRequestID(c))
	assert.Equal(t, "caller-supplied-id", deliverycontext.GetRequestIDFromContext(c.Request().Context()))
}

func TestRequestIDMiddleware_MintsIDWhenAbsent(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	rec, c := invokeRequestID(t, logger, "")

	minted := rec.Header().Get(deliverycontext.HeaderXRequestID)
	_, err := uuid.Parse(minted)
	require.NoError(t, err)
	assert.Equal(t, minted, deliverycontext.GetRequestID(c))
}

func TestRequestIDMiddleware_RemintsOversizedID(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	oversized := strings.Repeat("x", maxInboundRequestIDLength+1)

	rec, _ := invokeRequestID(t, logger, oversized)

	replaced := rec.Header().Get(deliverycontext.HeaderXRequestID)
	assert.NotEqual(t, oversized, replaced)
	_, err := uuid.Parse(replaced)
	assert.NoError(t, err)
}

func TestRequestIDMiddleware_BindsTaggedLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	_, c := invokeRequestID(t, logger, "log-me")

	scoped := deliverycontext.GetLoggerOrDefault(c.Request().Context(), nil)
	require.NotNil(t, scoped)
	scoped.Info("hello")

	assert.Contains(t, buf.String(), "request_id=log-me")
}
