package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"testing"

	"github.com/nasa/vsm/domain"
	"github.com/nasa/vsm/interfaces/mock"
	"github.com/nasa/vsm/service"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEcho(t *testing.T, router *mock.CameraRouterMock, registry *mock.NodeRegistryMock) *echo.Echo {
	t.Helper()
	doc, err := LoadSwagger()
	require.NoError(t, err)
	validator, err := NewRequestValidator(doc)
	require.NoError(t, err)

	e := echo.New()
	RegisterMiddleware(e, validator, log.NewNopLogger())
	RegisterHandlers(e, NewHTTPServer(router, registry, log.NewNopLogger()))
	service.RegisterErrorHandler(e, log.NewNopLogger())
	return e
}

func serve(e *echo.Echo, target, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if remote != "" {
		req.RemoteAddr = remote
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type errBody struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeErr(t *testing.T, rec *httptest.ResponseRecorder) errBody {
	t.Helper()
	var body errBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotNil(t, body.Error)
	return body
}

func TestNewHTTPServer_Panics(t *testing.T) {
	r := &mock.CameraRouterMock{}
	reg := &mock.NodeRegistryMock{}
	assert.PanicsWithValue(t, "handlers.http.go: router is required", func() { NewHTTPServer(nil, reg, log.NewNopLogger()) })
	assert.PanicsWithValue(t, "handlers.http.go: registry is required", func() { NewHTTPServer(r, nil, log.NewNopLogger()) })
	assert.PanicsWithValue(t, "handlers.http.go: logger is required", func() { NewHTTPServer(r, reg, nil) })
}

func TestHTTPServer_GetStream(t *testing.T) {
	resolved := domain.Resolution{
		Outcome: domain.ResolutionResolved,
		NodeID:  "render-1",
		Address: netip.MustParseAddr("10.0.0.7"),
		Port:    8080,
	}
	tests := []struct {
		name           string
		target         string
		resolution     domain.Resolution
		resolveErr     error
		expectedStatus int
		expectedCode   string
		location       string
	}{
		{
			name:           "307 redirect",
			target:         "/streams/Mast",
			resolution:     resolved,
			expectedStatus: http.StatusTemporaryRedirect,
			location:       "http://10.0.0.7:8080/video",
		},
		{
			name:           "307 keeps query string",
			target:         "/streams/Mast?width=640&fps=15",
			resolution:     resolved,
			expectedStatus: http.StatusTemporaryRedirect,
			location:       "http://10.0.0.7:8080/video?width=640&fps=15",
		},
		{
			name:           "404 unknown camera",
			target:         "/streams/Nope",
			resolution:     domain.Resolution{Outcome: domain.ResolutionNotFound},
			expectedStatus: http.StatusNotFound,
			expectedCode:   service.ErrCameraNotFound,
		},
		{
			name:           "503 every node busy",
			target:         "/streams/Mast",
			resolution:     domain.Resolution{Outcome: domain.ResolutionUnavailable},
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   service.ErrCameraUnavailable,
		},
		{
			name:           "500 resolve error",
			target:         "/streams/Mast",
			resolveErr:     context.Canceled,
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   service.ErrInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := &mock.CameraRouterMock{
				ResolveCameraFunc: func(ctx context.Context, cameraID string, client netip.Addr) (domain.Resolution, error) {
					return tt.resolution, tt.resolveErr
				},
			}
			e := newTestEcho(t, router, &mock.NodeRegistryMock{})

			rec := serve(e, tt.target, "192.168.1.100:51000")

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.location != "" {
				assert.Equal(t, tt.location, rec.Header().Get(echo.HeaderLocation))
			}
			if tt.expectedCode != "" {
				body := decodeErr(t, rec)
				assert.Equal(t, tt.expectedCode, body.Error.Code)
				assert.NotEmpty(t, body.Error.Message)
			}
			require.Len(t, router.ResolveCameraCalls(), 1)
			assert.Equal(t, netip.MustParseAddr("192.168.1.100"), router.ResolveCameraCalls()[0].Client)
		})
	}
}

func TestHTTPServer_GetStream_DecodesCamera(t *testing.T) {
	router := &mock.CameraRouterMock{}
	e := newTestEcho(t, router, &mock.NodeRegistryMock{})

	serve(e, "/streams/Left%20Nav", "")

	require.Len(t, router.ResolveCameraCalls(), 1)
	assert.Equal(t, "Left Nav", router.ResolveCameraCalls()[0].CameraID)
}

func TestHTTPServer_GetStream_IgnoresForwardedFor(t *testing.T) {
	router := &mock.CameraRouterMock{}
	e := newTestEcho(t, router, &mock.NodeRegistryMock{})

	req := httptest.NewRequest(http.MethodGet, "/streams/Mast", nil)
	req.RemoteAddr = "10.1.1.1:4000"
	req.Header.Set(echo.HeaderXForwardedFor, "192.168.1.1")
	e.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, router.ResolveCameraCalls(), 1)
	assert.Equal(t, netip.MustParseAddr("10.1.1.1"), router.ResolveCameraCalls()[0].Client)
}

func TestHTTPServer_GetStream_RejectsOversizedCamera(t *testing.T) {
	router := &mock.CameraRouterMock{}
	e := newTestEcho(t, router, &mock.NodeRegistryMock{})

	rec := serve(e, "/streams/"+strings.Repeat("x", 300), "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.ErrBadParameter, decodeErr(t, rec).Error.Code)
	assert.Empty(t, router.ResolveCameraCalls())
}

func TestHTTPServer_GetStatus(t *testing.T) {
	registry := &mock.NodeRegistryMock{
		StatusFunc: func() []domain.NodeStatus {
			return []domain.NodeStatus{
				{
					ID: "render-1", Hostname: "edge-1", Addresses: []string{"10.0.0.1"}, Port: 8080,
					Classification: domain.ClassificationActive, ClientCount: "2",
					Cameras: []domain.CameraStatus{{Camera: "Mast", Rendered: true}, {Camera: "Nav"}},
				},
				{ID: "render-2", Classification: domain.ClassificationBlacklisted, ClientCount: "0"},
			}
		},
	}
	e := newTestEcho(t, &mock.CameraRouterMock{}, registry)

	rec := serve(e, "/status", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, registry.RefreshActiveCalls(), 1)
	var body StatusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Nodes, 2)
	assert.Equal(t, "render-1", body.Nodes[0].ID)
	assert.Equal(t, "Active", body.Nodes[0].Classification)
	assert.Equal(t, []CameraStatus{{Camera: "Mast", Rendered: true}, {Camera: "Nav"}}, body.Nodes[0].Cameras)
	assert.Equal(t, []string{}, body.Nodes[1].Addresses)
}

func TestHTTPServer_GetStreams(t *testing.T) {
	registry := &mock.NodeRegistryMock{
		SnapshotFunc: func(class domain.Classification) []domain.RenderNode {
			require.Equal(t, domain.ClassificationActive, class)
			return []domain.RenderNode{
				{ID: "a", Cameras: domain.NewCameraSet("Nav", "Mast")},
				{ID: "b", Cameras: domain.NewCameraSet("Mast", "Nav")},
				{ID: "c", Cameras: domain.NewCameraSet("Left Nav")},
			}
		},
	}
	e := newTestEcho(t, &mock.CameraRouterMock{}, registry)

	rec := serve(e, "/streams", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body StreamsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, [][]Stream{
		{{Camera: "Left Nav", URL: "/streams/Left%20Nav"}},
		{{Camera: "Mast", URL: "/streams/Mast"}, {Camera: "Nav", URL: "/streams/Nav"}},
	}, body.Sets)
}

func TestHTTPServer_GetIndex(t *testing.T) {
	e := newTestEcho(t, &mock.CameraRouterMock{}, &mock.NodeRegistryMock{})

	rec := serve(e, "/", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body IndexResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "/status", body.Links["status"])
	assert.Equal(t, "/streams", body.Links["streams"])
}

func TestUnknownPath(t *testing.T) {
	e := newTestEcho(t, &mock.CameraRouterMock{}, &mock.NodeRegistryMock{})

	rec := serve(e, "/nowhere", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, service.ErrEntityNotFound, decodeErr(t, rec).Error.Code)
}

func TestRequestID(t *testing.T) {
	e := newTestEcho(t, &mock.CameraRouterMock{}, &mock.NodeRegistryMock{})

	rec := serve(e, "/", "")

	assert.Len(t, rec.Header().Get(echo.HeaderXRequestID), 36)
}
