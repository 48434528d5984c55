package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewErrorCodeToStatusCodeMaps(t *testing.T) {
	m := NewErrorCodeToStatusCodeMaps()
	require.NotNil(t, m)
	assert.Equal(t, http.StatusBadRequest, m[ErrBadParameter])
	assert.Equal(t, http.StatusNotFound, m[ErrEntityNotFound])
	assert.Equal(t, http.StatusNotFound, m[ErrCameraNotFound])
	assert.Equal(t, http.StatusNotFound, m[ErrNodeUnreachable])
	assert.Equal(t, http.StatusNotFound, m[ErrProtocol])
	assert.Equal(t, http.StatusServiceUnavailable, m[ErrCameraUnavailable])
	assert.Equal(t, http.StatusInternalServerError, m[ErrInternalServerError])
}

func serveError(t *testing.T, method string, err error) (*httptest.ResponseRecorder, ErrResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/streams/X", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(NewErrorCodeToStatusCodeMaps(), log.NewNopLogger()).Handler(err, c)

	var body ErrResponse
	if method != http.MethodHead && rec.Body.Len() > 0 {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	}
	return rec, body
}

func TestHTTPErrorHandler_Handler_StreamError_ReturnsMappedStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"camera_not_found", NewCameraNotFoundError("Camera 'X' not found"), http.StatusNotFound, ErrCameraNotFound},
		{"camera_unavailable", NewCameraUnavailableError("busy"), http.StatusServiceUnavailable, ErrCameraUnavailable},
		{"bad_parameter", NewBadParameterError("invalid body", nil), http.StatusBadRequest, ErrBadParameter},
		{"unknown_code", NewStreamError("weird", "?", nil), http.StatusInternalServerError, "weird"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := serveError(t, http.MethodGet, tt.err)
			assert.Equal(t, tt.status, rec.Code)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestHTTPErrorHandler_Handler_NonStreamError_Returns500(t *testing.T) {
	rec, body := serveError(t, http.MethodGet, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, ErrInternalServerError, body.Error.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestHTTPErrorHandler_Handler_EchoNotFound(t *testing.T) {
	rec, body := serveError(t, http.MethodGet, echo.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, ErrEntityNotFound, body.Error.Code)
}

func TestHTTPErrorHandler_Handler_EchoHTTPError_WithRequestError_ReturnsBadParameter(t *testing.T) {
	reqErr := &openapi3filter.RequestError{Err: assert.AnError}
	he := echo.NewHTTPError(http.StatusBadRequest, "request has an error")
	he.Internal = reqErr

	rec, body := serveError(t, http.MethodGet, he)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, ErrBadParameter, body.Error.Code)
	assert.Equal(t, "request has an error", body.Error.Message)
}

func TestHTTPErrorHandler_Handler_Head(t *testing.T) {
	rec, _ := serveError(t, http.MethodHead, echo.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestRegisterErrorHandler(t *testing.T) {
	e := echo.New()
	RegisterErrorHandler(e, log.NewNopLogger())
	require.NotNil(t, e.HTTPErrorHandler)
}
