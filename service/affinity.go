package service

import (
	"encoding/binary"
	"math/bits"
	"net/netip"
	"sort"
)

// MaxAffinityRank is returned for addresses of different families (or invalid ones); it is farther than
// any same-family pair.
const MaxAffinityRank = 129

// AffinityRank returns the bit length of a XOR b: the number of trailing bits left after the longest
// common prefix. Lower is topologically closer. IPv4 (and IPv4-mapped IPv6) compare as 32-bit integers.
func AffinityRank(a, b netip.Addr) int {
	a, b = a.Unmap(), b.Unmap()
	switch {
	case !a.IsValid() || !b.IsValid():
		return MaxAffinityRank
	case a.Is4() && b.Is4():
		x, y := a.As4(), b.As4()
		return bits.Len32(binary.BigEndian.Uint32(x[:]) ^ binary.BigEndian.Uint32(y[:]))
	case a.Is6() && b.Is6():
		x, y := a.As16(), b.As16()
		if hi := binary.BigEndian.Uint64(x[:8]) ^ binary.BigEndian.Uint64(y[:8]); hi != 0 {
			return 64 + bits.Len64(hi)
		}
		return bits.Len64(binary.BigEndian.Uint64(x[8:]) ^ binary.BigEndian.Uint64(y[8:]))
	default:
		return MaxAffinityRank
	}
}

// RankedAddress is an address with its affinity rank against a client.
type RankedAddress struct {
	Addr netip.Addr
	Rank int
}

// RankAddresses returns a new slice of addrs ordered best-first by affinity to client.
// Ties keep the announced order. addrs is never modified.
func RankAddresses(addrs []netip.Addr, client netip.Addr) []RankedAddress {
	out := make([]RankedAddress, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, RankedAddress{Addr: a, Rank: AffinityRank(a, client)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out
}
