package domain

import "net/netip"

// ResolutionOutcome is the result kind of a camera routing decision.
type ResolutionOutcome int

const (
	// ResolutionNotFound: no active node lists the camera.
	ResolutionNotFound ResolutionOutcome = iota
	// ResolutionUnavailable: the camera is known but every capable node is busy or multi-view.
	ResolutionUnavailable
	// ResolutionResolved: Address/Port show (or are being switched to) the camera.
	ResolutionResolved
)

func (o ResolutionOutcome) String() string {
	switch o {
	case ResolutionResolved:
		return "resolved"
	case ResolutionUnavailable:
		return "unavailable"
	default:
		return "not_found"
	}
}

// Resolution is the answer of the routing engine for one camera request.
type Resolution struct {
	Outcome  ResolutionOutcome
	NodeID   string
	Address  netip.Addr
	Port     int
	Assigned bool // true when the node was commanded to switch camera for this request
}

// VideoURL is the redirect target of a resolved request.
func (r Resolution) VideoURL() string {
	return VideoURL(r.Address, r.Port)
}
