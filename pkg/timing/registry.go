package timing

// RoutineFunc is the uniform callable shape shared by all instrumentable
// routines. The wrapper produced for a routine keeps this exact shape, so
// arguments, result and error pass through unchanged.
type RoutineFunc func(args ...any) (any, error)

// RoutineKind classifies a routine for the instrumentation skip rules.
type RoutineKind int

const (
	// KindMethod is an ordinary instrumentable routine.
	KindMethod RoutineKind = iota
	// KindConstructor builds a component instance.
	KindConstructor
	// KindInvoke is a component's callable entry point.
	KindInvoke
	// KindSetup performs deferred component initialization.
	KindSetup
	// KindDestructor tears a component down. Destructors are never wrapped:
	// timing one risks touching partially torn-down state and the number is
	// meaningless anyway.
	KindDestructor
)

// Routine is a named callable registered on a Component. The instrumentation
// walk replaces its function with a timed equivalent, in place and at most
// once.
type Routine struct {
	name  string
	kind  RoutineKind
	fn    RoutineFunc
	timed bool
}

// NewRoutine registers a callable under a name with a kind governing the
// skip rules.
func NewRoutine(name string, kind RoutineKind, fn RoutineFunc) *Routine {
	return &Routine{name: name, kind: kind, fn: fn}
}

// Name returns the routine's registered name.
func (r *Routine) Name() string { return r.name }

// Kind returns the routine's classification.
func (r *Routine) Kind() RoutineKind { return r.kind }

// Timed reports whether the routine has already been replaced by a timed
// wrapper.
func (r *Routine) Timed() bool { return r.timed }

// Call invokes the routine. After instrumentation this is the timed path;
// call sites are attributed to the caller of Call.
func (r *Routine) Call(args ...any) (any, error) {
	return r.fn(args...)
}

// Component is the instrumentable-type analog: a named collection of
// routines that are wrapped as a unit. A compound component has its
// construction timed by a separate outer mechanism, so its
// construction-related routines are excluded from per-routine wrapping.
type Component struct {
	name     string
	compound bool
	routines []*Routine
}

// NewComponent returns an ordinary component.
func NewComponent(name string) *Component {
	return &Component{name: name}
}

// NewCompoundComponent returns a component whose construction time is
// recorded elsewhere; its constructor, invoke and setup routines are left
// unwrapped.
func NewCompoundComponent(name string) *Component {
	return &Component{name: name, compound: true}
}

// Name returns the component's registered name.
func (c *Component) Name() string { return c.name }

// Compound reports whether construction timing is handled externally.
func (c *Component) Compound() bool { return c.compound }

// AddRoutine registers a routine on the component and returns it.
func (c *Component) AddRoutine(r *Routine) *Routine {
	c.routines = append(c.routines, r)
	return r
}

// Routine returns the registered routine with the given name, or nil.
func (c *Component) Routine(name string) *Routine {
	for _, r := range c.routines {
		if r.name == name {
			return r
		}
	}
	return nil
}

// Group is the module analog: a named collection of components and nested
// groups rooted at a path. The root group's path defines the traversal
// boundary for AddTiming; a group whose path does not begin with it is
// outside the subtree and is not walked. An empty path means the group has
// no resolvable location, so boundary membership cannot be decided and the
// group is skipped.
type Group struct {
	name       string
	path       string
	groups     []*Group
	components []*Component
}

// NewGroup returns a group rooted at path, e.g. "mantleflow/mesh".
func NewGroup(name, path string) *Group {
	return &Group{name: name, path: path}
}

// Name returns the group's registered name.
func (g *Group) Name() string { return g.name }

// Path returns the group's location token.
func (g *Group) Path() string { return g.path }

// AddGroup nests a subgroup. Groups may re-export each other; the walk is
// cycle-safe.
func (g *Group) AddGroup(sub *Group) *Group {
	g.groups = append(g.groups, sub)
	return sub
}

// AddComponent registers a component on the group and returns it.
func (g *Group) AddComponent(c *Component) *Component {
	g.components = append(g.components, c)
	return c
}
