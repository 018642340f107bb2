package printers

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/routines/pkg/chart"
	"tableflip.dev/routines/pkg/routine"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Calendar prints one month grid for every month that has routines, days
// with routines in bold.
func (pp *PrettyPrint) Calendar(c routine.Collection) {
	months := Months(c)
	if len(months) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}
	s := chart.Aggregate(c)
	for _, m := range months {
		pp.PrintMonthCount(m, CountsIn(m, s))
	}
}

// Months lists the first day of every month a parseable routine falls in.
func Months(c routine.Collection) []time.Time {
	seen := map[time.Time]struct{}{}
	var out []time.Time
	for _, r := range c {
		t, err := r.Time()
		if err != nil {
			continue
		}
		m := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// CountsIn spreads the per-day series over the days of the month of then.
func CountsIn(then time.Time, s chart.Series) []int {
	count := make([]int, DaysIn(then))
	prefix := then.Format("2006-01-")
	for i, label := range s.Labels {
		if !strings.HasPrefix(label, prefix) {
			continue
		}
		var day int
		if _, err := fmt.Sscanf(label[len(prefix):], "%d", &day); err != nil || day < 1 || day > len(count) {
			continue
		}
		count[day-1] += s.Counts[i]
	}
	return count
}

func (pp *PrettyPrint) PrintMonthCount(then time.Time, count []int) {
	w := pp.out()
	d := StartDay(then)

	tf := color.New(color.FgWhite, color.Italic)

	m := then.Format("January 2006")
	mid := (width - len(m)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(w, "%s%s\n", strings.Repeat(" ", mid), m)

	// Pad out the start of the month.
	_, _ = fmt.Fprint(w, strings.Repeat("   ", int(d)))

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	days := DaysIn(then)
	for i := 0; i < days; i++ {
		if i < len(count) && count[i] > 0 {
			_, _ = l2.Fprintf(w, "%2d ", i+1)
		} else {
			_, _ = l1.Fprintf(w, "%2d ", i+1)
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(w, "\n")
		}
	}
	_, _ = fmt.Fprint(w, "\n\n")
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
