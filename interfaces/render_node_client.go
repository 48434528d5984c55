package interfaces

import (
	"context"
	"net/netip"

	"github.com/nasa/vsm/domain"
)

// RenderNodeClient issues remote queries and commands to one render node (web commanding server) and
// parses its replies. Pure I/O, no decision logic.
//
// Errors are *service.StreamError with code node_unreachable (transport failure, timeout, non-2xx) or
// protocol_error (malformed reply). Implemented by adapters/wcs.Client. Called from service.registry
// (classification and refresh sweep) and service.router (camera assignment).
//
//go:generate moq -stub -out mock/render_node_client.go -pkg mock . RenderNodeClient
type RenderNodeClient interface {
	// Probe returns the cameras the node can render and its view ids.
	// Called once per node from service.registry.OnDiscovered.
	Probe(ctx context.Context, addr netip.Addr, port int) (domain.CameraSet, []string, error)

	// IsHeadless reports whether the node renders nothing (zero frame rate).
	// Called from OnDiscovered and from RefreshActive for Headless nodes.
	IsHeadless(ctx context.Context, addr netip.Addr, port int) (bool, error)

	// Refresh returns the node's viewer count (or domain.ClientCountUnsupported) and the cameras shown by
	// its visible views. Called from OnDiscovered and RefreshActive.
	Refresh(ctx context.Context, addr netip.Addr, port int) (domain.ClientCount, domain.CameraSet, error)

	// AssignCamera tells the node's first visible view to show camera. Best effort: the caller logs the
	// error and does not wait for the node state to change. Called from service.router.ResolveCamera.
	AssignCamera(ctx context.Context, addr netip.Addr, port int, camera string) error
}
