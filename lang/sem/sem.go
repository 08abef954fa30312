// Package sem defines the handful of small, dependency-free enumerations
// shared across the layout, resolver, compiler and machine packages:
// storage severities and scope classes. It exists purely to break what
// would otherwise be an import cycle between the layout tree (which
// records a Severity per ScopeItem) and the bound expression/pattern node
// kinds (which record a ScopeClass per resolved name).
package sem

import "fmt"

// Severity is the storage severity established at a name's definition:
// whether its full binding, only its slot, or only its value is directly
// addressable.
type Severity uint8

const (
	// SevNoun means only the value is addressable; slot and binding are
	// synthesized on demand.
	SevNoun Severity = iota
	// SevSlot means only the slot is addressable; the binding is synthesized
	// on demand.
	SevSlot
	// SevBinding means the full slot-holding binding is addressable.
	SevBinding
)

func (s Severity) String() string {
	switch s {
	case SevNoun:
		return "noun"
	case SevSlot:
		return "slot"
	case SevBinding:
		return "binding"
	default:
		return fmt.Sprintf("<invalid Severity %d>", uint8(s))
	}
}

// ScopeClass is the storage location class of a resolved name: local to the
// current activation's frame array, captured in the enclosing object's
// frame, or bound in the process-wide outer/host environment.
type ScopeClass uint8

const (
	// ClassLocal indexes into the current activation's local array.
	ClassLocal ScopeClass = iota
	// ClassFrame indexes into the enclosing object's captured-frame array.
	ClassFrame
	// ClassOuter indexes into the process-wide host environment.
	ClassOuter
)

func (c ScopeClass) String() string {
	switch c {
	case ClassLocal:
		return "local"
	case ClassFrame:
		return "frame"
	case ClassOuter:
		return "outer"
	default:
		return fmt.Sprintf("<invalid ScopeClass %d>", uint8(c))
	}
}
