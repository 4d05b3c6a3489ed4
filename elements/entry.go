package elements

// Kind identifies which variant an Entry holds.
type Kind int

// Entry variants.
const (
	KindLocator Kind = iota
	KindScalar
)

func (k Kind) String() string {
	switch k {
	case KindLocator:
		return "locator"
	case KindScalar:
		return "scalar"
	}
	return "unknown"
}

// Entry is a repository slot. It holds either a Locator loaded from a
// definition file or a string stored at runtime by a step.
type Entry struct {
	kind    Kind
	locator Locator
	scalar  string
}

// LocatorEntry returns an Entry holding l.
func LocatorEntry(l Locator) Entry {
	return Entry{kind: KindLocator, locator: l}
}

// ScalarEntry returns an Entry holding s.
func ScalarEntry(s string) Entry {
	return Entry{kind: KindScalar, scalar: s}
}

// Kind returns the variant held by e.
func (e Entry) Kind() Kind {
	return e.kind
}

// Locator returns the held Locator, if e is a locator entry.
func (e Entry) Locator() (Locator, bool) {
	if e.kind != KindLocator {
		return Locator{}, false
	}
	return e.locator, true
}

// String returns the display form of the entry: the scalar itself, or the
// locator's description.
func (e Entry) String() string {
	if e.kind == KindScalar {
		return e.scalar
	}
	return e.locator.String()
}
