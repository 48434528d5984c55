package mdns

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"time"

	"github.com/nasa/vsm/helpers"
	"github.com/nasa/vsm/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/grandcat/zeroconf"
)

const (
	DefaultServiceType = "_doug_wcs._tcp"
	DefaultDomain      = "local."
)

// BrowseFunc browses service in domain until ctx is done, sending every resolved instance to
// entries, and closes entries when it returns for good. zeroconf.Resolver.Browse has this contract.
type BrowseFunc func(ctx context.Context, service, domain string, entries chan<- *zeroconf.ServiceEntry) error

// Config tunes the browse rounds.
type Config struct {
	ServiceType string
	Domain      string
	// Window is how long one browse round listens for answers.
	Window time.Duration
	// Interval is the pause between two rounds.
	Interval time.Duration
	// LostAfterRounds is the number of consecutive rounds an instance may be missing before it is lost.
	LostAfterRounds int
}

// Browser turns mDNS announcements into registry discovery events.
//
// zeroconf reports each instance once per browse and never reports its removal, so the browser runs
// short browse rounds and declares an instance lost when it is missing from LostAfterRounds rounds.
type Browser struct {
	handler interfaces.DiscoveryHandler
	browse  BrowseFunc
	cfg     Config
	logger  log.Logger

	// known maps a discovered instance to the number of consecutive rounds it was missing from.
	known map[string]int
}

// NewBrowser creates a Browser. Panics on nil handler, browse or logger. Zero config fields get defaults.
//
// Called from cmd/main with ResolverBrowse; the registry is the handler.
func NewBrowser(handler interfaces.DiscoveryHandler, browse BrowseFunc, cfg Config, logger log.Logger) *Browser {
	if cfg.ServiceType == "" {
		cfg.ServiceType = DefaultServiceType
	}
	if cfg.Domain == "" {
		cfg.Domain = DefaultDomain
	}
	if cfg.Window <= 0 {
		cfg.Window = 3 * time.Second
	}
	if cfg.LostAfterRounds <= 0 {
		cfg.LostAfterRounds = 3
	}
	return &Browser{
		handler: helpers.NilPanic(handler, "adapters.mdns.browser.go: handler is required"),
		browse:  helpers.NilPanic(browse, "adapters.mdns.browser.go: browse is required"),
		cfg:     cfg,
		logger:  log.With(helpers.NilPanic(logger, "adapters.mdns.browser.go: logger is required"), "component", "mdns"),
		known:   make(map[string]int),
	}
}

// ResolverBrowse returns a BrowseFunc backed by a fresh zeroconf.Resolver per round (a resolver shuts
// its sockets down when its browse ends). Empty ifaces means every multicast interface.
func ResolverBrowse(ifaces []net.Interface) BrowseFunc {
	return func(ctx context.Context, service, domain string, entries chan<- *zeroconf.ServiceEntry) error {
		opts := []zeroconf.ClientOption{}
		if len(ifaces) > 0 {
			opts = append(opts, zeroconf.SelectIfaces(ifaces))
		}
		resolver, err := zeroconf.NewResolver(opts...)
		if err != nil {
			close(entries)
			return fmt.Errorf("create mdns resolver: %w", err)
		}
		return resolver.Browse(ctx, service, domain, entries)
	}
}

// Run browses in rounds until ctx is done.
func (b *Browser) Run(ctx context.Context) {
	level.Info(b.logger).Log("msg", "browsing", "service", b.cfg.ServiceType, "domain", b.cfg.Domain)
	for {
		if err := b.Round(ctx); err != nil {
			level.Warn(b.logger).Log("msg", "browse round failed", "err", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(b.cfg.Interval):
		}
	}
}

// Round runs one browse window. Every announced instance is reported once per round as it arrives;
// instances missing from too many rounds are reported lost when the window closes. A failed or cancelled round loses nothing.
func (b *Browser) Round(ctx context.Context) error {
	roundCtx, cancel := context.WithTimeout(ctx, b.cfg.Window)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry, 16)
	errCh := make(chan error, 1)
	go func() { errCh <- b.browse(roundCtx, b.cfg.ServiceType, b.cfg.Domain, entries) }()

	seen := make(map[string]struct{})
	for e := range entries {
		if e == nil {
			continue
		}
		addresses := entryAddresses(e)
		if len(addresses) == 0 {
			continue
		}
		if _, ok := seen[e.Instance]; ok {
			continue
		}
		seen[e.Instance] = struct{}{}
		if _, ok := b.known[e.Instance]; !ok {
			b.known[e.Instance] = 0
			level.Debug(b.logger).Log("msg", "instance announced", "name", e.Instance, "host", e.HostName, "port", e.Port)
		}
		// Reported every round: the handler ignores names it holds and re-adds nodes it dropped.
		b.handler.OnDiscovered(ctx, e.Instance, addresses, e.Port)
	}

	if err := <-errCh; err != nil {
		return err
	}
	if ctx.Err() != nil {
		return nil
	}
	for name, misses := range b.known {
		if _, ok := seen[name]; ok {
			b.known[name] = 0
			continue
		}
		misses++
		if misses < b.cfg.LostAfterRounds {
			b.known[name] = misses
			continue
		}
		delete(b.known, name)
		level.Info(b.logger).Log("msg", "instance gone", "name", name, "rounds", misses)
		b.handler.OnLost(name)
	}
	return nil
}

// entryAddresses returns the IPv4 addresses of e followed by its IPv6 addresses.
func entryAddresses(e *zeroconf.ServiceEntry) []netip.Addr {
	out := make([]netip.Addr, 0, len(e.AddrIPv4)+len(e.AddrIPv6))
	for _, ips := range [][]net.IP{e.AddrIPv4, e.AddrIPv6} {
		for _, ip := range ips {
			if a, ok := netip.AddrFromSlice(ip); ok {
				out = append(out, a.Unmap())
			}
		}
	}
	return out
}
