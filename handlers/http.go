// Package handlers contains the http handlers of the video stream manager.
package handlers

import (
	"fmt"
	"net/http"
	"net/netip"

	"github.com/nasa/vsm/domain"
	"github.com/nasa/vsm/helpers"
	"github.com/nasa/vsm/interfaces"
	"github.com/nasa/vsm/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

const (
	cameraNotFoundMessage    = "No such camera exists"
	cameraUnavailableMessage = "This camera is temporarily unavailable because all EDGE clients capable of " +
		"rendering it are already rendering different cameras for other clients"
)

// HTTPServer implements ServerInterface.
type HTTPServer struct {
	router   interfaces.CameraRouter
	registry interfaces.NodeRegistry
	logger   log.Logger
}

// NewHTTPServer creates a new HTTPServer. Panics on nil router, registry or logger.
func NewHTTPServer(router interfaces.CameraRouter, registry interfaces.NodeRegistry, logger log.Logger) *HTTPServer {
	return &HTTPServer{
		router:   helpers.NilPanic(router, "handlers.http.go: router is required"),
		registry: helpers.NilPanic(registry, "handlers.http.go: registry is required"),
		logger:   log.WithPrefix(helpers.NilPanic(logger, "handlers.http.go: logger is required"), "component", "HTTPServer"),
	}
}

// GetIndex (GET /) links the status and streams pages.
func (h *HTTPServer) GetIndex(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, IndexResponse{Links: map[string]string{
		"status":  "/status",
		"streams": "/streams",
	}})
}

// GetStatus (GET /status) refreshes the live nodes, then lists every known node.
func (h *HTTPServer) GetStatus(ectx echo.Context) error {
	h.registry.RefreshActive(ectx.Request().Context())
	return ectx.JSON(http.StatusOK, toStatusResponse(h.registry.Status()))
}

// GetStreams (GET /streams) lists the distinct camera sets of the active nodes.
func (h *HTTPServer) GetStreams(ectx echo.Context) error {
	active := h.registry.Snapshot(domain.ClassificationActive)
	return ectx.JSON(http.StatusOK, toStreamsResponse(active, "/streams"))
}

// GetStream (GET /streams/{camera}) redirects the client to the video endpoint of the node chosen for
// camera. The query string is forwarded.
func (h *HTTPServer) GetStream(ectx echo.Context, camera string) error {
	client, err := netip.ParseAddr(ectx.RealIP())
	if err != nil {
		level.Debug(h.logger).Log("msg", "client address not parsable, affinity disabled", "remote", ectx.RealIP())
	}
	client = client.Unmap()

	res, err := h.router.ResolveCamera(ectx.Request().Context(), camera, client)
	if err != nil {
		return fmt.Errorf("getStream failed to resolve camera %q, err: %w", camera, err)
	}

	switch res.Outcome {
	case domain.ResolutionNotFound:
		return service.NewCameraNotFoundError(cameraNotFoundMessage)
	case domain.ResolutionUnavailable:
		return service.NewCameraUnavailableError(cameraUnavailableMessage)
	}

	target := res.VideoURL()
	if q := ectx.Request().URL.RawQuery; q != "" {
		target += "?" + q
	}
	level.Info(h.logger).Log("msg", "Redirecting", "camera", camera, "node", res.NodeID, "location", target, "assigned", res.Assigned)
	return ectx.Redirect(http.StatusTemporaryRedirect, target)
}
