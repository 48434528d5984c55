package hostnames

import (
	"context"
	"fmt"
	"net"
	"net/netip"
)

// Localhost expands to every local IPv4 address, like a name that resolves to loopback.
const Localhost = "localhost"

// Resolver turns allow/deny list entries (host names or literal addresses) into address sets.
type Resolver struct {
	lookupHost     func(ctx context.Context, host string) ([]string, error)
	interfaceAddrs func() ([]net.Addr, error)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLookupHost replaces net.DefaultResolver.LookupHost.
func WithLookupHost(fn func(ctx context.Context, host string) ([]string, error)) Option {
	return func(r *Resolver) { r.lookupHost = fn }
}

// WithInterfaceAddrs replaces net.InterfaceAddrs.
func WithInterfaceAddrs(fn func() ([]net.Addr, error)) Option {
	return func(r *Resolver) { r.interfaceAddrs = fn }
}

func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		lookupHost:     net.DefaultResolver.LookupHost,
		interfaceAddrs: net.InterfaceAddrs,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the union of the addresses of names. A name that is "localhost" or resolves to a
// loopback address stands for this machine and expands to all local IPv4 interface addresses.
// Returns an error naming the first entry that cannot be resolved.
func (r *Resolver) Resolve(ctx context.Context, names []string) (map[netip.Addr]struct{}, error) {
	out := make(map[netip.Addr]struct{})
	for _, name := range names {
		addrs, err := r.resolveOne(ctx, name)
		if err != nil {
			return nil, err
		}
		for _, a := range addrs {
			out[a] = struct{}{}
		}
	}
	return out, nil
}

func (r *Resolver) resolveOne(ctx context.Context, name string) ([]netip.Addr, error) {
	if name == Localhost {
		return r.localAddrs()
	}

	var addrs []netip.Addr
	if a, err := netip.ParseAddr(name); err == nil {
		addrs = []netip.Addr{a.Unmap()}
	} else {
		hosts, err := r.lookupHost(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", name, err)
		}
		for _, h := range hosts {
			if a, err := netip.ParseAddr(h); err == nil {
				addrs = append(addrs, a.WithZone("").Unmap())
			}
		}
		if len(addrs) == 0 {
			return nil, fmt.Errorf("resolve %q: no addresses", name)
		}
	}

	for _, a := range addrs {
		if a.IsLoopback() {
			return r.localAddrs()
		}
	}
	return addrs, nil
}

// localAddrs lists the IPv4 addresses of every local interface, loopback included.
func (r *Resolver) localAddrs() ([]netip.Addr, error) {
	ifaddrs, err := r.interfaceAddrs()
	if err != nil {
		return nil, fmt.Errorf("list interface addresses: %w", err)
	}
	var out []netip.Addr
	for _, ia := range ifaddrs {
		ipnet, ok := ia.(*net.IPNet)
		if !ok {
			continue
		}
		a, ok := netip.AddrFromSlice(ipnet.IP)
		if !ok {
			continue
		}
		if a = a.Unmap(); a.Is4() {
			out = append(out, a)
		}
	}
	return out, nil
}
