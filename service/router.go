package service

import (
	"context"
	"net/netip"
	"sort"

	"github.com/nasa/vsm/domain"
	"github.com/nasa/vsm/helpers"
	"github.com/nasa/vsm/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// router implements interfaces.CameraRouter on top of the render-node registry.
type router struct {
	registry interfaces.NodeRegistry
	client   interfaces.RenderNodeClient
	logger   log.Logger
}

// candidate is an Active, single-view node able to render the requested camera, with the address that
// is closest to the requesting client.
type candidate struct {
	node domain.RenderNode
	addr netip.Addr
	rank int
}

// NewRouter creates the camera routing engine. Panics on nil registry, client or logger.
//
// Called from cmd/main; used by handlers.HTTPServer.GetStream.
func NewRouter(registry interfaces.NodeRegistry, client interfaces.RenderNodeClient, logger log.Logger) interfaces.CameraRouter {
	return &router{
		registry: helpers.NilPanic(registry, "service.router.go: registry is required"),
		client:   helpers.NilPanic(client, "service.router.go: client is required"),
		logger:   log.With(helpers.NilPanic(logger, "service.router.go: logger is required"), "component", "router"),
	}
}

// ResolveCamera refreshes the registry, then picks the node that should show cameraID to client:
//  1. no Active node lists the camera: NotFound;
//  2. every capable node shows several views: Unavailable (they must not be switched);
//  3. candidates are ordered by client count (most first, unsupported last), then by affinity of their
//     best address to client, then by id;
//  4. the first candidate already rendering the camera wins;
//  5. otherwise the first idle candidate (no clients) is told to switch camera and wins;
//  6. otherwise Unavailable.
//
// Only ctx cancellation is returned as an error. A failed camera switch is logged and the node is still
// returned; the next refresh shows whether it took effect.
func (r *router) ResolveCamera(ctx context.Context, cameraID string, client netip.Addr) (domain.Resolution, error) {
	r.registry.RefreshActive(ctx)
	if err := ctx.Err(); err != nil {
		return domain.Resolution{}, err
	}

	capable := 0
	candidates := make([]candidate, 0)
	for _, n := range r.registry.Snapshot(domain.ClassificationActive) {
		if !n.Cameras.Has(cameraID) {
			continue
		}
		capable++
		if n.MultiView() || len(n.Addresses) == 0 {
			continue
		}
		best := RankAddresses(n.Addresses, client)[0]
		candidates = append(candidates, candidate{node: n, addr: best.Addr, rank: best.Rank})
	}
	if capable == 0 {
		return domain.Resolution{Outcome: domain.ResolutionNotFound}, nil
	}
	if len(candidates) == 0 {
		return domain.Resolution{Outcome: domain.ResolutionUnavailable}, nil
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].before(candidates[j]) })

	for _, c := range candidates {
		if c.node.RenderedCameras.Has(cameraID) {
			return c.resolution(false), nil
		}
	}

	for _, c := range candidates {
		if c.node.ClientCount != 0 {
			continue
		}
		if err := r.client.AssignCamera(ctx, c.node.CommandAddress(), c.node.Port, cameraID); err != nil {
			level.Warn(r.logger).Log("msg", "camera assignment failed", "node", c.node.ID, "camera", cameraID, "err", err)
		} else {
			level.Info(r.logger).Log("msg", "assigned camera", "node", c.node.ID, "camera", cameraID)
		}
		return c.resolution(true), nil
	}

	return domain.Resolution{Outcome: domain.ResolutionUnavailable}, nil
}

// before orders candidates: more clients first (unsupported counts last), closer address, then id.
func (c candidate) before(o candidate) bool {
	if c.node.ClientCount != o.node.ClientCount {
		if !o.node.ClientCount.Supported() {
			return true
		}
		if !c.node.ClientCount.Supported() {
			return false
		}
		return c.node.ClientCount > o.node.ClientCount
	}
	if c.rank != o.rank {
		return c.rank < o.rank
	}
	return c.node.ID < o.node.ID
}

func (c candidate) resolution(assigned bool) domain.Resolution {
	return domain.Resolution{
		Outcome:  domain.ResolutionResolved,
		NodeID:   c.node.ID,
		Address:  c.addr,
		Port:     c.node.Port,
		Assigned: assigned,
	}
}
