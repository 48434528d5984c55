package service

import "net/netip"

// AccessPolicy decides which discovered render nodes may be used.
// Allow, when non-nil, takes precedence and Deny is ignored.
type AccessPolicy struct {
	Allow map[netip.Addr]struct{}
	Deny  map[netip.Addr]struct{}
}

// NewAllowPolicy builds a policy that only accepts nodes announcing one of addrs.
func NewAllowPolicy(addrs ...netip.Addr) AccessPolicy {
	return AccessPolicy{Allow: addrSet(addrs)}
}

// NewDenyPolicy builds a policy that rejects nodes announcing any of addrs.
func NewDenyPolicy(addrs ...netip.Addr) AccessPolicy {
	return AccessPolicy{Deny: addrSet(addrs)}
}

// IsBlacklisted reports whether a node announcing addresses must be blacklisted.
func (p AccessPolicy) IsBlacklisted(addresses []netip.Addr) bool {
	if p.Allow != nil {
		for _, a := range addresses {
			if _, ok := p.Allow[a.Unmap()]; ok {
				return false
			}
		}
		return true
	}
	for _, a := range addresses {
		if _, ok := p.Deny[a.Unmap()]; ok {
			return true
		}
	}
	return false
}

func addrSet(addrs []netip.Addr) map[netip.Addr]struct{} {
	s := make(map[netip.Addr]struct{}, len(addrs))
	for _, a := range addrs {
		s[a.Unmap()] = struct{}{}
	}
	return s
}
