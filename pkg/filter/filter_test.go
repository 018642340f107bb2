package filter

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/routines/pkg/routine"
)

func ids(c routine.Collection) []string {
	out := make([]string, len(c))
	for i, r := range c {
		out[i] = r.ID
	}
	return out
}

func TestApplyScenarios(t *testing.T) {
	c := routine.Collection{
		{ID: "1", Name: "Run", Datetime: "2024-05-01T07:00"},
		{ID: "2", Name: "Read", Datetime: "2024-05-01T20:00"},
	}

	tests := map[string]struct {
		crit Criteria
		want []string
	}{
		"date prefix":       {crit: Criteria{DatePrefix: "2024-05-01"}, want: []string{"1", "2"}},
		"name substring":    {crit: Criteria{NameSubstring: "run"}, want: []string{"1"}},
		"name upper":        {crit: Criteria{NameSubstring: "RE"}, want: []string{"2"}},
		"both":              {crit: Criteria{DatePrefix: "2024-05-01", NameSubstring: "r"}, want: []string{"1", "2"}},
		"both exclude":      {crit: Criteria{DatePrefix: "2024-05-02", NameSubstring: "run"}, want: []string{}},
		"none":              {want: []string{"1", "2"}},
		"prefix is literal": {crit: Criteria{DatePrefix: "05-01"}, want: []string{}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := ids(Apply(c, tc.crit))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplySortsStableAndDoesNotMutate(t *testing.T) {
	c := routine.Collection{
		{ID: "late", Name: "b", Datetime: "2024-05-03T09:00"},
		{ID: "bad", Name: "c", Datetime: "whenever"},
		{ID: "tie-a", Name: "d", Datetime: "2024-05-01T07:00"},
		{ID: "early", Name: "e", Datetime: "2024-04-30"},
		{ID: "tie-b", Name: "f", Datetime: "2024-05-01T07:00:00"},
	}
	before := c.Clone()

	got := ids(Apply(c, Criteria{}))
	want := []string{"early", "tie-a", "tie-b", "late", "bad"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before, c); diff != "" {
		t.Fatalf("input was modified (-want +got):\n%s", diff)
	}
}

func TestApplySortsZonedDatetimes(t *testing.T) {
	c := routine.Collection{
		{ID: "late", Name: "a", Datetime: "2024-05-02T09:00Z"},
		{ID: "early", Name: "b", Datetime: "2024-05-01T07:00Z"},
		{ID: "offset", Name: "c", Datetime: "2024-05-01T09:00+01:00"},
	}
	got := ids(Apply(c, Criteria{}))
	want := []string{"early", "offset", "late"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

// Apply's output is exactly the matching subsequence of the input, sorted.
func TestApplyProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	names := []string{"Run", "read", "Piano", "RUNNING", "math"}
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)

	for round := 0; round < 50; round++ {
		var c routine.Collection
		for i := 0; i < rng.Intn(12); i++ {
			when := base.Add(time.Duration(rng.Intn(72)) * time.Hour)
			c = append(c, routine.Routine{
				ID:       fmt.Sprintf("%d-%d", round, i),
				Name:     names[rng.Intn(len(names))],
				Datetime: when.Format(routine.InputLayout),
			})
		}
		crit := Criteria{}
		if rng.Intn(2) == 0 {
			crit.DatePrefix = base.AddDate(0, 0, rng.Intn(3)).Format("2006-01-02")
		}
		if rng.Intn(2) == 0 {
			crit.NameSubstring = []string{"run", "R", "xyz", "a"}[rng.Intn(4)]
		}

		got := Apply(c, crit)

		matching := 0
		for _, r := range c {
			if crit.Match(r) {
				matching++
			}
		}
		if len(got) != matching {
			t.Fatalf("round %d: expected %d matches, got %d", round, matching, len(got))
		}
		for i, r := range got {
			if !crit.Match(r) {
				t.Fatalf("round %d: %#v does not match %#v", round, r, crit)
			}
			if i == 0 {
				continue
			}
			prev, _ := got[i-1].Time()
			cur, _ := r.Time()
			if cur.Before(prev) {
				t.Fatalf("round %d: not sorted at %d", round, i)
			}
		}
	}
}
