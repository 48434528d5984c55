package service

import (
	"errors"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// RegisterErrorHandler registers the stream manager error handler on e.
func RegisterErrorHandler(e *echo.Echo, logger log.Logger) {
	e.HTTPErrorHandler = NewHTTPErrorHandler(NewErrorCodeToStatusCodeMaps(), logger).Handler
}

// NewErrorCodeToStatusCodeMaps creates an error code to http status mapping.
// Render-node transport errors surface as 404 with their message, like an unknown camera.
func NewErrorCodeToStatusCodeMaps() map[string]int {
	m := make(map[string]int)
	m[ErrBadParameter] = http.StatusBadRequest
	m[ErrEntityNotFound] = http.StatusNotFound
	m[ErrCameraNotFound] = http.StatusNotFound
	m[ErrNodeUnreachable] = http.StatusNotFound
	m[ErrProtocol] = http.StatusNotFound
	m[ErrCameraUnavailable] = http.StatusServiceUnavailable
	m[ErrInternalServerError] = http.StatusInternalServerError

	return m
}

// HTTPErrorHandler is an error handler.
type HTTPErrorHandler struct {
	errorCodeToHTTPStatusCodeMap map[string]int
	logger                       log.Logger
}

// NewHTTPErrorHandler creates a new instance of the HTTPErrorHandler.
func NewHTTPErrorHandler(errorCodeToStatusCodeMaps map[string]int, logger log.Logger) *HTTPErrorHandler {
	return &HTTPErrorHandler{
		errorCodeToHTTPStatusCodeMap: errorCodeToStatusCodeMaps,
		logger:                       logger,
	}
}

func (h *HTTPErrorHandler) getStatusCode(errorCode string) int {
	status, ok := h.errorCodeToHTTPStatusCodeMap[errorCode]
	if ok {
		return status
	}

	return http.StatusInternalServerError
}

// Handler handles error returned by echo Handlers.
func (h *HTTPErrorHandler) Handler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	streamErr := ToStreamError(err)
	if streamErr == nil {
		streamErr = NewStreamError(ErrInternalServerError, "an internal server error has occurred", err)
	}

	var statusCode int
	var he *echo.HTTPError
	if errors.As(err, &he) && ToStreamError(err) == nil {
		codeStr := ErrInternalServerError
		switch {
		case he.Code == http.StatusNotFound:
			codeStr = ErrEntityNotFound
		case he.Code == http.StatusBadRequest:
			codeStr = ErrBadParameter
		}
		if he.Internal != nil {
			if herr, ok := he.Internal.(*echo.HTTPError); ok {
				he = herr
			}
			var requestError *openapi3filter.RequestError
			if errors.As(he.Internal, &requestError) {
				codeStr = ErrBadParameter
			}
		}

		m, _ := he.Message.(string)
		streamErr = NewStreamError(codeStr, m, err)
		statusCode = he.Code
	} else {
		he = nil
		statusCode = h.getStatusCode(streamErr.Code)
	}

	lvl := level.Error
	if statusCode < http.StatusInternalServerError {
		lvl = level.Info
	}
	lvl(h.logger).Log(
		"msg", "HTTP request error",
		"path", c.Request().URL.Path,
		"status", statusCode,
		"err", err,
	)

	if c.Request().Method == http.MethodHead && he != nil {
		_ = c.NoContent(he.Code)
		return
	}
	_ = c.JSON(statusCode, ErrResponse{Error: streamErr})
}

// ErrResponse from server.
type ErrResponse struct {
	Error *StreamError `json:"error,omitempty"`
}
