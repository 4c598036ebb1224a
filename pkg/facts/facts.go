// Package facts defines the immutable fact model consumed by the analyzer.
//
// Facts describe what a source scanner discovered in a codebase: which
// services exist and which services each of them declares as dependencies.
// The analyzer has no opinion on how facts were extracted - any front end
// that can produce a facts document can drive it.
//
// A facts document is JSON:
//
//	{
//	  "version": 1,
//	  "services": [
//	    {"name": "OrderService", "file": "order.swift", "line": 12},
//	    {"name": "CheckoutVM", "file": "checkout.swift", "line": 3, "tag": "vm"}
//	  ],
//	  "layers": [
//	    {"service": "OrderService", "depends_on": ["PaymentService"], "errors": ["OrderError"]}
//	  ]
//	}
package facts

import (
	"slices"
	"strings"
)

// Version is the facts document schema version this package reads and writes.
const Version = 1

// Service tags. An empty tag means a regular service; the view-model tag
// drives the vm classification and the view-model invariant rules.
const (
	TagNone      = ""
	TagViewModel = "vm"
)

// Legacy name suffixes that mark a service as a view model when the scanner
// did not tag it explicitly. Kept for compatibility with older facts
// documents produced before tags existed.
var legacyViewModelSuffixes = []string{"VM", "ViewModel"}

// ServiceFact records a discovered service declaration.
// Name is the identity key: two facts with the same name describe the
// same service.
type ServiceFact struct {
	Name string `json:"name" bson:"name"`
	File string `json:"file,omitempty" bson:"file,omitempty"`
	Line int    `json:"line,omitempty" bson:"line,omitempty"`
	Tag  string `json:"tag,omitempty" bson:"tag,omitempty"`
}

// IsViewModel reports whether the service is tagged as a view model,
// either explicitly or via the legacy name-suffix convention.
func (s ServiceFact) IsViewModel() bool {
	if s.Tag == TagViewModel {
		return true
	}
	if s.Tag != TagNone {
		return false
	}
	for _, suffix := range legacyViewModelSuffixes {
		if strings.HasSuffix(s.Name, suffix) {
			return true
		}
	}
	return false
}

// LayerFact records the declared dependencies of one service layer.
// A service may contribute multiple layer facts; their dependency sets
// are unioned when the graph is built.
type LayerFact struct {
	Service   string   `json:"service" bson:"service"`
	DependsOn []string `json:"depends_on,omitempty" bson:"depends_on,omitempty"`
	Errors    []string `json:"errors,omitempty" bson:"errors,omitempty"`
	File      string   `json:"file,omitempty" bson:"file,omitempty"`
	Line      int      `json:"line,omitempty" bson:"line,omitempty"`
}

// Set is a complete, immutable fact set for one analysis run.
type Set struct {
	Version  int           `json:"version" bson:"version"`
	Services []ServiceFact `json:"services" bson:"services"`
	Layers   []LayerFact   `json:"layers" bson:"layers"`
}

// Canonical returns a copy of the set with services and layers sorted by
// name (and layers by service, then file, then line). Canonical form makes
// document hashing and serialized output independent of scanner ordering.
func (s Set) Canonical() Set {
	out := Set{
		Version:  s.Version,
		Services: slices.Clone(s.Services),
		Layers:   make([]LayerFact, len(s.Layers)),
	}
	slices.SortStableFunc(out.Services, func(a, b ServiceFact) int {
		return strings.Compare(a.Name, b.Name)
	})
	for i, l := range s.Layers {
		l.DependsOn = slices.Clone(l.DependsOn)
		l.Errors = slices.Clone(l.Errors)
		slices.Sort(l.DependsOn)
		slices.Sort(l.Errors)
		out.Layers[i] = l
	}
	slices.SortStableFunc(out.Layers, func(a, b LayerFact) int {
		if c := strings.Compare(a.Service, b.Service); c != 0 {
			return c
		}
		if c := strings.Compare(a.File, b.File); c != 0 {
			return c
		}
		return a.Line - b.Line
	})
	return out
}
