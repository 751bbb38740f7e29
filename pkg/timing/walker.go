package timing

import "strings"

// AddTiming walks the group graph rooted at root, breadth-first, and
// installs timed wrappers on every component routine found inside the root's
// path boundary. Each group and component is handled at most once per
// recorder, so walking the same graph again has no additional effect, and
// the visited check happens before a subgroup is queued, which keeps the
// walk terminating even when groups re-export each other.
//
// Setting DisableEnv in the environment short-circuits the walk entirely.
func (r *Recorder) AddTiming(root *Group) {
	if timingDisabled() {
		return
	}
	if root == nil || root.path == "" {
		return
	}

	boundary := root.path
	queue := []*Group{root}
	r.visitedGroups[root] = struct{}{}

	for len(queue) > 0 {
		g := queue[0]
		queue = queue[1:]

		for _, sub := range g.groups {
			if sub == nil || sub.name == "" {
				continue
			}
			if sub.path == "" {
				continue // no resolvable location
			}
			if !strings.HasPrefix(sub.path, boundary) {
				continue // outside the root's subtree
			}
			if _, seen := r.visitedGroups[sub]; seen {
				continue
			}
			r.visitedGroups[sub] = struct{}{}
			queue = append(queue, sub)
		}

		for _, c := range g.components {
			if c == nil || c.name == "" {
				continue
			}
			if _, seen := r.visitedComponents[c]; seen {
				continue
			}
			r.visitedComponents[c] = struct{}{}
			r.instrumentComponent(c)
		}
	}
}
