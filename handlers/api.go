package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers of openapi.yaml.
type ServerInterface interface {
	// (GET /)
	GetIndex(ctx echo.Context) error
	// (GET /status)
	GetStatus(ctx echo.Context) error
	// (GET /streams)
	GetStreams(ctx echo.Context) error
	// (GET /streams/{camera})
	GetStream(ctx echo.Context, camera string) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// GetIndex converts echo context to params.
func (w *ServerInterfaceWrapper) GetIndex(ctx echo.Context) error {
	return w.Handler.GetIndex(ctx)
}

// GetStatus converts echo context to params.
func (w *ServerInterfaceWrapper) GetStatus(ctx echo.Context) error {
	return w.Handler.GetStatus(ctx)
}

// GetStreams converts echo context to params.
func (w *ServerInterfaceWrapper) GetStreams(ctx echo.Context) error {
	return w.Handler.GetStreams(ctx)
}

// GetStream converts echo context to params.
func (w *ServerInterfaceWrapper) GetStream(ctx echo.Context) error {
	var camera string
	err := runtime.BindStyledParameterWithOptions("simple", "camera", ctx.Param("camera"), &camera,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter camera: %s", err))
	}
	return w.Handler.GetStream(ctx, camera)
}

// EchoRouter is the subset of *echo.Echo and *echo.Group used to register routes.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the routes under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/", wrapper.GetIndex)
	router.GET(baseURL+"/status", wrapper.GetStatus)
	router.GET(baseURL+"/streams", wrapper.GetStreams)
	router.GET(baseURL+"/streams/:camera", wrapper.GetStream)
}

// IndexResponse is the body of GET /.
type IndexResponse struct {
	Links map[string]string `json:"links"`
}

// StatusResponse is the body of GET /status.
type StatusResponse struct {
	Nodes []NodeStatus `json:"nodes"`
}

// NodeStatus is one render node of StatusResponse.
type NodeStatus struct {
	ID             string         `json:"id"`
	Hostname       string         `json:"hostname"`
	Addresses      []string       `json:"addresses"`
	Port           int            `json:"port"`
	Classification string         `json:"classification"`
	ClientCount    string         `json:"client_count"`
	Cameras        []CameraStatus `json:"cameras"`
}

// CameraStatus is one camera of NodeStatus.
type CameraStatus struct {
	Camera   string `json:"camera"`
	Rendered bool   `json:"rendered"`
}

// StreamsResponse is the body of GET /streams.
type StreamsResponse struct {
	Sets [][]Stream `json:"sets"`
}

// Stream links one camera to its routing url.
type Stream struct {
	Camera string `json:"camera"`
	URL    string `json:"url"`
}
