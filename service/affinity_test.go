package service

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAffinityRank(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "same_address", a: "10.0.0.1", b: "10.0.0.1", want: 0},
		{name: "last_bit_differs", a: "10.0.0.1", b: "10.0.0.0", want: 1},
		{name: "same_slash_24", a: "192.168.1.10", b: "192.168.1.200", want: 8},
		{name: "different_first_octet", a: "10.0.0.1", b: "192.168.0.1", want: 32},
		{name: "mapped_ipv4_unmapped", a: "::ffff:10.0.0.1", b: "10.0.0.3", want: 2},
		{name: "ipv6_low_half", a: "fe80::1", b: "fe80::2", want: 2},
		{name: "ipv6_high_half", a: "2001:db8::1", b: "2001:db9::1", want: 64 + 33},
		{name: "mixed_families", a: "10.0.0.1", b: "fe80::1", want: MaxAffinityRank},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AffinityRank(netip.MustParseAddr(tt.a), netip.MustParseAddr(tt.b))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, AffinityRank(netip.MustParseAddr(tt.b), netip.MustParseAddr(tt.a)))
		})
	}

	t.Run("invalid_address", func(t *testing.T) {
		assert.Equal(t, MaxAffinityRank, AffinityRank(netip.Addr{}, netip.MustParseAddr("10.0.0.1")))
	})
}

func TestRankAddresses(t *testing.T) {
	client := netip.MustParseAddr("192.168.1.50")
	addrs := []netip.Addr{
		netip.MustParseAddr("10.1.1.1"),
		netip.MustParseAddr("192.168.1.7"),
		netip.MustParseAddr("192.168.2.7"),
	}
	original := append([]netip.Addr(nil), addrs...)

	ranked := RankAddresses(addrs, client)
	require.Len(t, ranked, 3)
	assert.Equal(t, netip.MustParseAddr("192.168.1.7"), ranked[0].Addr)
	assert.Equal(t, netip.MustParseAddr("192.168.2.7"), ranked[1].Addr)
	assert.Equal(t, netip.MustParseAddr("10.1.1.1"), ranked[2].Addr)
	assert.Equal(t, original, addrs, "input must not be reordered")

	t.Run("ties_keep_announced_order", func(t *testing.T) {
		a := netip.MustParseAddr("10.0.0.2")
		b := netip.MustParseAddr("10.0.0.3")
		got := RankAddresses([]netip.Addr{b, a}, netip.MustParseAddr("10.0.0.0"))
		assert.Equal(t, b, got[0].Addr)
		assert.Equal(t, a, got[1].Addr)
	})
}
