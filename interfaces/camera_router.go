package interfaces

import (
	"context"
	"net/netip"

	"github.com/nasa/vsm/domain"
)

// CameraRouter picks the render node that should serve a camera to a client.
// Implemented by service.router; called from handlers.HTTPServer.GetStream.
//
//go:generate moq -stub -out mock/camera_router.go -pkg mock . CameraRouter
type CameraRouter interface {
	// ResolveCamera returns Resolved (node address and port), NotFound or Unavailable.
	// The error is non-nil only when ctx is done before a decision was made.
	ResolveCamera(ctx context.Context, cameraID string, client netip.Addr) (domain.Resolution, error)
}
