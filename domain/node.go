package domain

import (
	"fmt"
	"net/netip"
	"strconv"
)

// Classification is the registry bucket of a render node.
type Classification string

const (
	ClassificationActive       Classification = "Active"
	ClassificationHeadless     Classification = "Headless"
	ClassificationIncompatible Classification = "Incompatible"
	ClassificationBlacklisted  Classification = "Blacklisted"
)

// Classifications lists every bucket in display order.
var Classifications = []Classification{
	ClassificationActive,
	ClassificationHeadless,
	ClassificationIncompatible,
	ClassificationBlacklisted,
}

// Terminal reports whether nodes in this bucket are never polled nor routed to again.
func (c Classification) Terminal() bool {
	return c == ClassificationIncompatible || c == ClassificationBlacklisted
}

// ClientCount is the number of viewers attached to a render node, or ClientCountUnsupported.
type ClientCount int

// ClientCountUnsupported marks a node that cannot report its viewer count.
const ClientCountUnsupported ClientCount = -1

// Supported reports whether the node reported a numeric count.
func (c ClientCount) Supported() bool {
	return c >= 0
}

func (c ClientCount) String() string {
	if !c.Supported() {
		return "unsupported"
	}
	return strconv.Itoa(int(c))
}

// RenderNode is one discovered render server (a web commanding server announced over mDNS).
// Cameras is fixed at classification; RenderedCameras and ClientCount are replaced on every poll.
type RenderNode struct {
	ID              string
	Addresses       []netip.Addr
	Port            int
	Hostname        string
	Cameras         CameraSet
	Views           []string
	RenderedCameras CameraSet
	ClientCount     ClientCount
	Classification  Classification
}

// CommandAddress is the address used to talk to the node (the first announced one).
func (n RenderNode) CommandAddress() netip.Addr {
	if len(n.Addresses) == 0 {
		return netip.Addr{}
	}
	return n.Addresses[0]
}

// MultiView reports whether the node currently shows more than one camera.
func (n RenderNode) MultiView() bool {
	return n.RenderedCameras.Len() > 1
}

// Clone returns a deep copy so readers never share mutable state with the registry.
func (n RenderNode) Clone() RenderNode {
	out := n
	out.Addresses = append([]netip.Addr(nil), n.Addresses...)
	out.Views = append([]string(nil), n.Views...)
	out.Cameras = n.Cameras.Clone()
	out.RenderedCameras = n.RenderedCameras.Clone()
	return out
}

// VideoURL returns the node's video endpoint on the given address.
func VideoURL(addr netip.Addr, port int) string {
	return fmt.Sprintf("http://%s/video", netip.AddrPortFrom(addr, uint16(port)))
}
