// Package routine defines the routine record and the collection it lives in.
package routine

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Routine is a scheduled activity. The JSON keys are the persisted layout.
type Routine struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Datetime    string `json:"datetime" yaml:"datetime"`
	StudentName string `json:"studentName,omitempty" yaml:"studentName,omitempty"`
}

// Collection is every routine, persisted as one unit. Order carries no meaning.
type Collection []Routine

// Fields holds the mutable part of a routine, as read from a form.
type Fields struct {
	Name     string
	Datetime string
	Student  string
	// HasStudent is set when the host offers the student field at all.
	HasStudent bool
}

// Normalize trims the fields the same way the form does.
func (f Fields) Normalize() Fields {
	f.Name = strings.TrimSpace(f.Name)
	f.Datetime = strings.TrimSpace(f.Datetime)
	f.Student = strings.TrimSpace(f.Student)
	return f
}

// Empty reports whether a required field is missing.
func (f Fields) Empty() bool {
	n := f.Normalize()
	return n.Name == "" || n.Datetime == ""
}

// Validate checks the persisted-record invariant for f.
func (f Fields) Validate() error {
	n := f.Normalize()
	if n.Name == "" {
		return fmt.Errorf("routine: name required")
	}
	if n.Datetime == "" {
		return fmt.Errorf("routine: datetime required")
	}
	if _, err := ParseTime(n.Datetime); err != nil {
		return fmt.Errorf("routine: %w", err)
	}
	return nil
}

// New builds a routine from f with the given id.
func New(id string, f Fields) Routine {
	f = f.Normalize()
	r := Routine{ID: id, Name: f.Name, Datetime: f.Datetime}
	if f.HasStudent {
		r.StudentName = f.Student
	}
	return r
}

// Apply replaces the mutable fields of r. The student name is only touched
// when the fields carry one.
func (r Routine) Apply(f Fields) Routine {
	f = f.Normalize()
	r.Name = f.Name
	r.Datetime = f.Datetime
	if f.HasStudent {
		r.StudentName = f.Student
	}
	return r
}

// Time parses the datetime of r.
func (r Routine) Time() (time.Time, error) {
	return ParseTime(r.Datetime)
}

// Day is the date portion of the datetime, used to group routines per day.
func (r Routine) Day() string {
	day := []rune(r.Datetime)
	if len(day) < 10 {
		return r.Datetime
	}
	return string(day[:10])
}

func (r Routine) String() string {
	if r.StudentName != "" {
		return fmt.Sprintf("%s  %s  (%s)", r.Name, r.Datetime, r.StudentName)
	}
	return fmt.Sprintf("%s  %s", r.Name, r.Datetime)
}

// Find returns the routine with id.
func (c Collection) Find(id string) (Routine, bool) {
	for _, r := range c {
		if r.ID == id {
			return r, true
		}
	}
	return Routine{}, false
}

// Index returns the position of id in c, or -1.
func (c Collection) Index(id string) int {
	for i, r := range c {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// Without returns a copy of c with id removed.
func (c Collection) Without(id string) Collection {
	out := make(Collection, 0, len(c))
	for _, r := range c {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

// Clone returns a copy of c that shares nothing with it.
func (c Collection) Clone() Collection {
	if c == nil {
		return Collection{}
	}
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

// NewID derives an id from now in unix milliseconds, bumping it until it is
// not already taken in c.
func NewID(now time.Time, c Collection) string {
	taken := make(map[string]struct{}, len(c))
	for _, r := range c {
		taken[r.ID] = struct{}{}
	}
	ms := now.UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		if _, ok := taken[id]; !ok {
			return id
		}
		ms++
	}
}
