package styling

import (
	"slices"
	"sort"
	"sync"

	"github.com/npillmayer/ecss/asset"
	"github.com/npillmayer/ecss/cssom"
	"github.com/npillmayer/ecss/host"
	"github.com/npillmayer/ecss/matching"
	"github.com/npillmayer/ecss/selector"
)

// State is the refresh state of a stylesheet owner.
type State uint8

// Owner states. An owner is Idle while none of its stylesheets is loaded,
// Dirty if it has to be re-matched on the next tick, and Watched while its
// tracked nodes are observed for changes.
const (
	Idle State = iota
	Dirty
	Watched
)

func (s State) String() string {
	switch s {
	case Dirty:
		return "dirty"
	case Watched:
		return "watched"
	}
	return "idle"
}

// selection is the set of nodes matched by one selector of one stylesheet.
type selection struct {
	sheet    *cssom.StyleSheet
	selector selector.Selector
	nodes    []host.NodeID
}

// owner is a node referencing stylesheets, together with its matching state.
type owner struct {
	node       host.NodeID
	sheets     []asset.Handle
	state      State
	tracked    *matching.Tracked
	selections []selection // ordered by ascending weight
}

// Engine applies stylesheets to the scene of a World.
type Engine struct {
	mu       sync.Mutex
	world    host.World
	store    *asset.Store
	registry *matching.Registry
	gate     bool
	owners   map[host.NodeID]*owner
	order    []host.NodeID // owners in order of attachment
	systems  []system
	lastTick host.Tick
}

// Option configures an engine.
type Option func(*Engine)

// WithRegistry sets the registry used to resolve component selectors.
func WithRegistry(r *matching.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithStore sets the asset store stylesheets are taken from.
func WithStore(s *asset.Store) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// GateOnDeclared controls whether a property is run only if at least one
// stylesheet matched in the current tick declares it. Default is true.
func GateOnDeclared(on bool) Option {
	return func(e *Engine) {
		e.gate = on
	}
}

// New creates an engine for a World.
func New(world host.World, opts ...Option) *Engine {
	e := &Engine{
		world:  world,
		gate:   true,
		owners: make(map[host.NodeID]*owner),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		e.store = asset.NewStore()
	}
	if e.registry == nil {
		e.registry = matching.NewRegistry()
	}
	return e
}

// Registry returns the component registry of the engine.
func (e *Engine) Registry() *matching.Registry {
	return e.registry
}

// Store returns the asset store of the engine.
func (e *Engine) Store() *asset.Store {
	return e.store
}

// Attach sets the stylesheets referenced by an owner node. Attaching to
// an existing owner replaces its references. The owner is re-matched on the
// next tick.
func (e *Engine) Attach(node host.NodeID, sheets ...asset.Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	o, ok := e.owners[node]
	if !ok {
		o = &owner{node: node}
		e.owners[node] = o
		e.order = append(e.order, node)
	}
	o.sheets = slices.Clone(sheets)
	o.state = Dirty
	tracer().Debugf("owner %s references %v", node, sheets)
}

// Detach forgets an owner. Values already applied to its subtree are kept.
func (e *Engine) Detach(node host.NodeID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.owners[node]; !ok {
		return
	}
	delete(e.owners, node)
	e.order = slices.DeleteFunc(e.order, func(n host.NodeID) bool { return n == node })
}

// Refresh forces an owner to be re-matched on the next tick.
func (e *Engine) Refresh(node host.NodeID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if o, ok := e.owners[node]; ok {
		o.state = Dirty
	}
}

// State returns the state of an owner. The flag is false for nodes which
// are not owners.
func (e *Engine) State(node host.NodeID) (State, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if o, ok := e.owners[node]; ok {
		return o.state, true
	}
	return Idle, false
}

// Tick runs one refresh cycle:
// asset events are consumed, watched owners are checked for relevant
// changes, dirty owners are re-matched, and all properties are applied to
// the fresh matches.
//
// If the world is a host.Clock, Tick closes the tick it processed by
// advancing the clock. Worlds without a clock have to advance their tick
// between a call to Tick and any mutation which should be noticed.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.world.CurrentTick()
	e.consumeAssetEvents()
	e.checkWatched()
	matched := e.rematch()
	if matched > 0 {
		for _, sys := range e.systems {
			if e.gate && !e.declared(sys.name()) {
				continue
			}
			sys.run(e)
		}
	}
	for _, o := range e.owners {
		o.selections = nil
	}
	e.lastTick = now
	if clock, ok := e.world.(host.Clock); ok {
		clock.Advance()
	}
}

func (e *Engine) consumeAssetEvents() {
	for _, ev := range e.store.Drain() {
		for _, o := range e.owners {
			if slices.Contains(o.sheets, ev.Handle) {
				tracer().Debugf("stylesheet %s %s, owner %s is dirty", ev.Handle, ev.Kind, o.node)
				o.state = Dirty
			}
		}
	}
}

func (e *Engine) checkWatched() {
	for _, o := range e.owners {
		if o.state != Watched || o.tracked == nil {
			continue
		}
		if o.tracked.ChangedSince(e.world, e.registry, e.lastTick) {
			o.state = Dirty
		}
	}
}

// rematch matches all dirty owners and returns the number of owners matched.
func (e *Engine) rematch() int {
	count := 0
	for _, node := range e.order {
		o := e.owners[node]
		if o.state != Dirty {
			continue
		}
		o.tracked = matching.NewTracked()
		o.selections = nil
		loaded := 0
		for _, h := range o.sheets {
			sheet, ok := e.store.Get(h)
			if !ok {
				continue
			}
			loaded++
			for _, rule := range sheet.Rules() {
				nodes := matching.SelectEntities(e.world, e.registry, o.node, rule.Selector, o.tracked)
				if len(nodes) == 0 {
					continue
				}
				o.selections = append(o.selections, selection{
					sheet:    sheet,
					selector: rule.Selector,
					nodes:    nodes,
				})
			}
		}
		sort.SliceStable(o.selections, func(i, j int) bool {
			return o.selections[i].selector.Weight() < o.selections[j].selector.Weight()
		})
		if loaded == 0 {
			o.state = Idle
			continue
		}
		o.state = Watched
		count++
		tracer().Infof("owner %s matched %d selectors", o.node, len(o.selections))
	}
	return count
}

// declared checks if any stylesheet with matches in this tick declares
// property name.
func (e *Engine) declared(name string) bool {
	for _, o := range e.owners {
		for _, sel := range o.selections {
			if sel.sheet.Declares(name) {
				return true
			}
		}
	}
	return false
}

func (e *Engine) ownersInOrder() []*owner {
	owners := make([]*owner, 0, len(e.order))
	for _, node := range e.order {
		owners = append(owners, e.owners[node])
	}
	return owners
}
