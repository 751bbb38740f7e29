package timing

// instrumentComponent swaps every eligible routine on c for its timed
// equivalent.
func (r *Recorder) instrumentComponent(c *Component) {
	for _, rt := range c.routines {
		if rt.kind == KindDestructor {
			continue // never wrap teardown
		}
		if c.compound && constructionKind(rt.kind) {
			continue // construction timing is recorded by the outer mechanism
		}
		if rt.timed {
			continue
		}
		rt.fn = r.timed(displayName(c.name, rt.name), rt.fn)
		rt.timed = true
	}
}

func constructionKind(k RoutineKind) bool {
	return k == KindConstructor || k == KindInvoke || k == KindSetup
}

func displayName(component, routine string) string {
	if component == "" {
		return routine
	}
	return component + "." + routine + "()"
}

// timed wraps fn with the timing probe. The wrapper is transparent: the same
// arguments, result, error and panic flow through it unchanged. The recorded
// call site is the caller of Routine.Call, and a record is only written when
// the current depth is within the recorder's bound, so nested instrumented
// calls inside an already-measured frame are not counted twice. When
// recording is disabled the wrapper costs one boolean check before
// delegating.
func (r *Recorder) timed(name string, fn RoutineFunc) RoutineFunc {
	return func(args ...any) (any, error) {
		if !r.enabled {
			return fn(args...)
		}
		r.currentDepth++
		defer func() { r.currentDepth-- }()
		if r.currentDepth > r.maxDepth {
			return fn(args...)
		}
		file, line := callSite(1)
		start := timeNow()
		result, err := fn(args...)
		r.hits.add(HitKey{Name: name, File: file, Line: line}, timeNow().Sub(start).Seconds())
		return result, err
	}
}
