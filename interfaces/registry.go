package interfaces

import (
	"context"
	"net/netip"

	"github.com/nasa/vsm/domain"
)

// DiscoveryHandler receives mDNS discovery events. The registry is the only implementation;
// adapters/mdns.Browser is the only producer.
//
//go:generate moq -stub -out mock/discovery_handler.go -pkg mock . DiscoveryHandler
type DiscoveryHandler interface {
	// OnDiscovered classifies an announced node. Blocks until the node is in its bucket. Called on every
	// announcement; names already held are ignored.
	OnDiscovered(ctx context.Context, name string, addresses []netip.Addr, port int)

	// OnLost removes the node from every bucket. Idempotent.
	OnLost(name string)
}

// NodeRegistry is the read side of the render-node registry used by the routing engine, the status
// handlers and the status publisher. Implemented by service.registry.
//
//go:generate moq -stub -out mock/node_registry.go -pkg mock . NodeRegistry
type NodeRegistry interface {
	// RefreshActive polls every Active and Headless node, removing the ones that fail and promoting
	// Headless nodes that started rendering. Never holds the registry lock during remote calls.
	RefreshActive(ctx context.Context)

	// Snapshot returns deep copies of the nodes of one bucket, sorted by id.
	Snapshot(class domain.Classification) []domain.RenderNode

	// Status returns the status view of every known node, grouped by classification.
	Status() []domain.NodeStatus
}
