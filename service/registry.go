package service

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"sort"
	"strings"
	"sync"

	"github.com/nasa/vsm/domain"
	"github.com/nasa/vsm/helpers"
	"github.com/nasa/vsm/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"
)

// DefaultRefreshConcurrency bounds the number of render nodes polled at once by RefreshActive.
const DefaultRefreshConcurrency = 16

// entry is one row of the registry table. generation identifies the discovery incarnation of the node so
// that a sweep result never lands on a node that was lost and rediscovered meanwhile.
type entry struct {
	node       domain.RenderNode
	generation uint64
}

// registry implements interfaces.NodeRegistry and interfaces.DiscoveryHandler. It keeps one table keyed
// by discovery name with an explicit classification tag. Every mutation and read happens under mu; remote
// calls to render nodes (classification probe, refresh sweep) run outside of it. Fields under mu: nodes,
// pending (names being classified, with the generation reserved for the attempt), generation (last
// issued incarnation number).
type registry struct {
	client         interfaces.RenderNodeClient
	policy         AccessPolicy
	logger         log.Logger
	lookupHostname func(ctx context.Context, addr netip.Addr) string
	concurrency    int

	mu         sync.Mutex
	nodes      map[string]*entry
	pending    map[string]uint64
	generation uint64
}

// RegistryOption configures the registry.
type RegistryOption func(*registry)

// WithHostnameLookup replaces the reverse DNS lookup used for the status page.
func WithHostnameLookup(lookup func(ctx context.Context, addr netip.Addr) string) RegistryOption {
	return func(r *registry) {
		r.lookupHostname = helpers.NilPanic(lookup, "service.registry.go: hostname lookup is required")
	}
}

// WithRefreshConcurrency sets how many nodes RefreshActive polls in parallel (values < 1 are ignored).
func WithRefreshConcurrency(n int) RegistryOption {
	return func(r *registry) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// Registry is the concrete render-node registry: discovery events in, snapshots out.
type Registry interface {
	interfaces.NodeRegistry
	interfaces.DiscoveryHandler
	// Counts returns the number of nodes per classification.
	Counts() map[domain.Classification]int
}

// NewRegistry creates an empty render-node registry. Panics on nil client or logger.
//
// Parameters: client: render-node transport (adapters/wcs); policy: allow/deny lists resolved at startup;
// logger: classification, removal and promotion events are logged.
//
// Called from cmd/main; the result is handed to the discovery browser, the router and the HTTP handlers.
func NewRegistry(client interfaces.RenderNodeClient, policy AccessPolicy, logger log.Logger, opts ...RegistryOption) Registry {
	r := &registry{
		client:         helpers.NilPanic(client, "service.registry.go: client is required"),
		policy:         policy,
		logger:         log.With(helpers.NilPanic(logger, "service.registry.go: logger is required"), "component", "registry"),
		lookupHostname: reverseLookup,
		concurrency:    DefaultRefreshConcurrency,
		nodes:          make(map[string]*entry),
		pending:        make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OnDiscovered classifies a newly announced node and inserts it into its bucket. It blocks until the
// node is classified so routing never sees a half-classified node. Names already known (or being
// classified) are ignored; a node lost while it was being classified is not inserted.
func (r *registry) OnDiscovered(ctx context.Context, name string, addresses []netip.Addr, port int) {
	if len(addresses) == 0 {
		level.Warn(r.logger).Log("msg", "ignoring node without addresses", "node", name)
		return
	}
	r.mu.Lock()
	_, known := r.nodes[name]
	_, classifying := r.pending[name]
	if known || classifying {
		r.mu.Unlock()
		level.Debug(r.logger).Log("msg", "ignoring duplicate discovery", "node", name)
		return
	}
	r.generation++
	attempt := r.generation
	r.pending[name] = attempt
	r.mu.Unlock()

	node := r.classify(ctx, name, addresses, port)

	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.pending[name]; !ok || current != attempt {
		level.Info(r.logger).Log("msg", "node lost during classification", "node", name)
		return
	}
	delete(r.pending, name)
	r.nodes[name] = &entry{node: node, generation: attempt}
	level.Info(r.logger).Log(
		"msg", "found render node",
		"node", name,
		"classification", node.Classification,
		"addr", node.CommandAddress(),
		"port", node.Port,
	)
}

// classify runs the probe sequence of a new node: policy, cameras/views, headless check, first refresh.
func (r *registry) classify(ctx context.Context, name string, addresses []netip.Addr, port int) domain.RenderNode {
	node := domain.RenderNode{
		ID:              name,
		Addresses:       append([]netip.Addr(nil), addresses...),
		Port:            port,
		Cameras:         domain.CameraSet{},
		RenderedCameras: domain.CameraSet{},
		ClientCount:     domain.ClientCountUnsupported,
	}
	addr := node.CommandAddress()
	node.Hostname = r.lookupHostname(ctx, addr)

	if r.policy.IsBlacklisted(node.Addresses) {
		node.Classification = domain.ClassificationBlacklisted
		return node
	}

	incompatible := func(step string, err error) domain.RenderNode {
		level.Error(r.logger).Log("msg", "render node is incompatible", "node", name, "step", step, "err", err)
		node.Classification = domain.ClassificationIncompatible
		return node
	}

	cameras, views, err := r.client.Probe(ctx, addr, port)
	if err != nil {
		return incompatible("probe", err)
	}
	node.Cameras = cameras.Clone()
	node.Views = append([]string(nil), views...)

	headless, err := r.client.IsHeadless(ctx, addr, port)
	if err != nil {
		return incompatible("headless", err)
	}
	if headless {
		node.Classification = domain.ClassificationHeadless
		return node
	}

	count, rendered, err := r.client.Refresh(ctx, addr, port)
	if err != nil {
		return incompatible("refresh", err)
	}
	if !rendered.SubsetOf(node.Cameras) {
		return incompatible("refresh", NewProtocolError("node renders cameras it does not offer", nil))
	}
	node.ClientCount = count
	node.RenderedCameras = rendered.Clone()
	node.Classification = domain.ClassificationActive
	return node
}

// OnLost removes the node from every bucket. Idempotent.
func (r *registry) OnLost(name string) {
	r.mu.Lock()
	_, known := r.nodes[name]
	delete(r.nodes, name)
	delete(r.pending, name)
	r.mu.Unlock()
	if known {
		level.Info(r.logger).Log("msg", "lost render node", "node", name)
	}
}

// RefreshActive polls every Active node (refresh) and every Headless node (headless recheck) in
// parallel. Failing nodes are destroyed; Headless nodes that render again are refreshed and promoted.
// The lock is held only to copy the targets and to apply each result.
func (r *registry) RefreshActive(ctx context.Context) {
	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for _, t := range r.pollTargets() {
		g.Go(func() error {
			r.poll(ctx, t)
			return nil
		})
	}
	_ = g.Wait()
}

func (r *registry) pollTargets() []entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entry, 0, len(r.nodes))
	for _, e := range r.nodes {
		if e.node.Classification.Terminal() {
			continue
		}
		out = append(out, entry{node: e.node.Clone(), generation: e.generation})
	}
	return out
}

func (r *registry) poll(ctx context.Context, t entry) {
	addr, port := t.node.CommandAddress(), t.node.Port
	if t.node.Classification == domain.ClassificationHeadless {
		headless, err := r.client.IsHeadless(ctx, addr, port)
		if err != nil {
			r.destroy(ctx, t, "headless recheck failed", err)
			return
		}
		if headless {
			return
		}
	}
	count, rendered, err := r.client.Refresh(ctx, addr, port)
	if err != nil {
		r.destroy(ctx, t, "refresh failed", err)
		return
	}
	r.apply(t, count, rendered)
}

// apply stores a successful refresh result if the polled incarnation is still registered.
func (r *registry) apply(t entry, count domain.ClientCount, rendered domain.CameraSet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.nodes[t.node.ID]
	if !ok || e.generation != t.generation {
		return
	}
	if !rendered.SubsetOf(e.node.Cameras) {
		delete(r.nodes, t.node.ID)
		level.Warn(r.logger).Log("msg", "removed render node", "node", t.node.ID, "reason", "renders cameras it does not offer")
		return
	}
	e.node.ClientCount = count
	e.node.RenderedCameras = rendered.Clone()
	if e.node.Classification == domain.ClassificationHeadless {
		e.node.Classification = domain.ClassificationActive
		level.Info(r.logger).Log("msg", "headless render node is rendering again", "node", t.node.ID)
	}
}

// destroy removes the polled incarnation. Failures caused by the caller giving up (ctx done) say nothing
// about the node and are ignored.
func (r *registry) destroy(ctx context.Context, t entry, reason string, err error) {
	if ctx.Err() != nil {
		return
	}
	r.mu.Lock()
	e, ok := r.nodes[t.node.ID]
	if ok && e.generation == t.generation {
		delete(r.nodes, t.node.ID)
	}
	r.mu.Unlock()
	if ok && e.generation == t.generation {
		level.Warn(r.logger).Log("msg", "removed render node", "node", t.node.ID, "reason", reason, "err", err)
	}
}

// Snapshot returns deep copies of the nodes in class, sorted by id.
func (r *registry) Snapshot(class domain.Classification) []domain.RenderNode {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.RenderNode, 0)
	for _, e := range r.nodes {
		if e.node.Classification == class {
			out = append(out, e.node.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Status returns every node's status view, grouped in domain.Classifications order then by id.
func (r *registry) Status() []domain.NodeStatus {
	order := make(map[domain.Classification]int, len(domain.Classifications))
	for i, class := range domain.Classifications {
		order[class] = i
	}
	r.mu.Lock()
	nodes := make([]domain.RenderNode, 0, len(r.nodes))
	for _, e := range r.nodes {
		nodes = append(nodes, e.node.Clone())
	}
	r.mu.Unlock()

	sort.Slice(nodes, func(i, j int) bool {
		if order[nodes[i].Classification] != order[nodes[j].Classification] {
			return order[nodes[i].Classification] < order[nodes[j].Classification]
		}
		return nodes[i].ID < nodes[j].ID
	})
	out := make([]domain.NodeStatus, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ToStatus())
	}
	return out
}

// Counts returns the number of nodes per classification; every bucket is present.
func (r *registry) Counts() map[domain.Classification]int {
	out := make(map[domain.Classification]int, len(domain.Classifications))
	for _, class := range domain.Classifications {
		out[class] = 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.nodes {
		out[e.node.Classification]++
	}
	return out
}

// reverseLookup resolves addr to a host name; on failure the error text is shown instead.
func reverseLookup(ctx context.Context, addr netip.Addr) string {
	names, err := net.DefaultResolver.LookupAddr(ctx, addr.String())
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) {
			return dnsErr.Err
		}
		return err.Error()
	}
	if len(names) == 0 {
		return addr.String()
	}
	return strings.TrimSuffix(names[0], ".")
}
