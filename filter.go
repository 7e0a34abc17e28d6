package gateway

import "github.com/tidwall/gjson"

// Filter decides whether a catch-all handler should see an event. Filters
// look at the kind and the raw payload only, so they are cheap compared to
// decoding.
type Filter interface {
	Match(ev *Event) bool
}

// OfKind returns a Filter that matches events of any of the given kinds.
func OfKind(kinds ...Kind) Filter {
	return kindSet{kinds: kinds}
}

type kindSet struct {
	kinds []Kind
}

func (f kindSet) Match(ev *Event) bool {
	for _, k := range f.kinds {
		if ev.Kind == k {
			return true
		}
	}
	return false
}

// HasFields returns a Filter that matches when all gjson paths exist in the
// payload.
func HasFields(paths ...string) Filter {
	return hasFields{paths: paths}
}

type hasFields struct {
	paths []string
}

func (f hasFields) Match(ev *Event) bool {
	for _, p := range f.paths {
		if !gjson.GetBytes(ev.Payload, p).Exists() {
			return false
		}
	}
	return true
}

// FieldEquals returns a Filter that matches when the payload path exists,
// is a string, and equals value.
func FieldEquals(path, value string) Filter {
	return fieldEquals{path: path, value: value}
}

type fieldEquals struct {
	path  string
	value string
}

func (f fieldEquals) Match(ev *Event) bool {
	r := gjson.GetBytes(ev.Payload, f.path)
	return r.Type == gjson.String && r.String() == f.value
}

// And returns a Filter that matches when all filters match.
func And(fs ...Filter) Filter {
	return and{fs: fs}
}

type and struct {
	fs []Filter
}

func (f and) Match(ev *Event) bool {
	for _, filter := range f.fs {
		if !filter.Match(ev) {
			return false
		}
	}
	return true
}

// Or returns a Filter that matches when any filter matches.
func Or(fs ...Filter) Filter {
	return or{fs: fs}
}

type or struct {
	fs []Filter
}

func (f or) Match(ev *Event) bool {
	for _, filter := range f.fs {
		if filter.Match(ev) {
			return true
		}
	}
	return false
}

// Not inverts a Filter.
func Not(f Filter) Filter {
	return not{f: f}
}

type not struct {
	f Filter
}

func (f not) Match(ev *Event) bool {
	return !f.f.Match(ev)
}
