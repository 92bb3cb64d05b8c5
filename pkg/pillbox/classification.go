package pillbox

type classKind uint8

const (
	classUnset classKind = iota
	className
	classCode
)

// Classification is a shape or color search value given either by name or
// by SPL code. The zero value means the parameter is not set.
//
// Build one with [ByName], [ByCode] or [ParseClassification] and turn it into
// the wire value with [CodeTable.Resolve].
type Classification struct {
	kind  classKind
	value string
}

// ByName returns a Classification holding a human-readable name such as "round".
func ByName(name string) Classification {
	return Classification{kind: className, value: name}
}

// ByCode returns a Classification holding an SPL code such as "C48348".
func ByCode(code string) Classification {
	return Classification{kind: classCode, value: code}
}

// ParseClassification interprets free-form input against table t: known
// codes become [ByCode], anything else [ByName]. Empty input yields the zero
// Classification.
func ParseClassification(t *CodeTable, s string) Classification {
	switch {
	case s == "":
		return Classification{}
	case t.IsCode(s):
		return ByCode(s)
	default:
		return ByName(s)
	}
}

// IsZero reports whether the Classification is unset.
func (c Classification) IsZero() bool { return c.kind == classUnset }

// IsCode reports whether the value was given as an SPL code.
func (c Classification) IsCode() bool { return c.kind == classCode }

// Value returns the raw name or code as given.
func (c Classification) Value() string { return c.value }

// String formats the value for logs, e.g. "name:round" or "code:C48348".
func (c Classification) String() string {
	switch c.kind {
	case className:
		return "name:" + c.value
	case classCode:
		return "code:" + c.value
	default:
		return ""
	}
}
