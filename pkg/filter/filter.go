// Package filter narrows a routine collection and orders it for display.
package filter

import (
	"sort"
	"strings"
	"time"

	"tableflip.dev/routines/pkg/routine"
)

// Criteria are the two optional display filters. Empty means unset.
type Criteria struct {
	DatePrefix    string
	NameSubstring string
}

// IsZero reports whether no filter is set.
func (c Criteria) IsZero() bool {
	return c.DatePrefix == "" && c.NameSubstring == ""
}

// Match reports whether r satisfies every set criterion.
func (c Criteria) Match(r routine.Routine) bool {
	if c.DatePrefix != "" && !strings.HasPrefix(r.Datetime, c.DatePrefix) {
		return false
	}
	if c.NameSubstring != "" && !strings.Contains(strings.ToLower(r.Name), strings.ToLower(c.NameSubstring)) {
		return false
	}
	return true
}

// Apply returns the routines of c matching crit, ascending by datetime. The
// sort is stable; routines whose datetime does not parse go last. c is not
// modified.
func Apply(c routine.Collection, crit Criteria) routine.Collection {
	type keyed struct {
		r  routine.Routine
		t  time.Time
		ok bool
	}
	kept := make([]keyed, 0, len(c))
	for _, r := range c {
		if !crit.Match(r) {
			continue
		}
		t, err := r.Time()
		kept = append(kept, keyed{r: r, t: t, ok: err == nil})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		left, right := kept[i], kept[j]
		switch {
		case left.ok && right.ok:
			return left.t.Before(right.t)
		case left.ok:
			return true
		default:
			return false
		}
	})

	out := make(routine.Collection, len(kept))
	for i, k := range kept {
		out[i] = k.r
	}
	return out
}
