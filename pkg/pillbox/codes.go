package pillbox

import (
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/matzehuels/pillbox/pkg/errors"
)

// CodeTable is a closed, bidirectional mapping between human-readable
// classification names (e.g. "ROUND") and FDA SPL codes (e.g. "C48348").
//
// Both directions are built once from the same list of pairs, so they are
// exact inverses. A CodeTable has no mutating methods and is safe for
// concurrent use.
type CodeTable struct {
	kind   string
	byName map[string]string
	byCode map[string]string
}

type codePair struct {
	name string
	code string
}

func newCodeTable(kind string, pairs []codePair) *CodeTable {
	t := &CodeTable{
		kind:   kind,
		byName: make(map[string]string, len(pairs)),
		byCode: make(map[string]string, len(pairs)),
	}
	for _, p := range pairs {
		t.byName[p.name] = p.code
		t.byCode[p.code] = p.name
	}
	return t
}

// Shapes maps SPL shape names to their codes.
var Shapes = newCodeTable("shape", []codePair{
	{"BULLET", "C48335"},
	{"CAPSULE", "C48336"},
	{"CLOVER", "C48337"},
	{"DIAMOND", "C48338"},
	{"DOUBLE_CIRCLE", "C48339"},
	{"FREEFORM", "C48340"},
	{"GEAR", "C48341"},
	{"HEPTAGON", "C48342"},
	{"HEXAGON", "C48343"},
	{"OCTAGON", "C48344"},
	{"OVAL", "C48345"},
	{"PENTAGON", "C48346"},
	{"RECTANGLE", "C48347"},
	{"ROUND", "C48348"},
	{"SEMI_CIRCLE", "C48349"},
	{"SQUARE", "C48350"},
	{"TEAR", "C48351"},
	{"TRAPEZOID", "C48352"},
	{"TRIANGLE", "C48353"},
})

// Colors maps SPL color names to their codes.
var Colors = newCodeTable("color", []codePair{
	{"BLACK", "C48323"},
	{"GRAY", "C48324"},
	{"WHITE", "C48325"},
	{"RED", "C48326"},
	{"PURPLE", "C48327"},
	{"PINK", "C48328"},
	{"GREEN", "C48329"},
	{"YELLOW", "C48330"},
	{"ORANGE", "C48331"},
	{"BROWN", "C48332"},
	{"BLUE", "C48333"},
	{"TURQUOISE", "C48334"},
})

// upper is the case normalization applied to every lookup key.
// cases.Caser is stateful, so each call builds its own.
func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// Kind returns the classification this table covers ("shape" or "color").
func (t *CodeTable) Kind() string { return t.kind }

// Code returns the SPL code for a classification name.
// The name is upper-cased before lookup, so "round" and "ROUND" are equal.
// Unknown names yield an [errors.ErrCodeUnrecognizedClassification] error.
func (t *CodeTable) Code(name string) (string, error) {
	if code, ok := t.byName[upper(name)]; ok {
		return code, nil
	}
	return "", errors.New(errors.ErrCodeUnrecognizedClassification, "unknown %s name %q", t.kind, name)
}

// Name returns the classification name for an SPL code.
// Unknown codes yield an [errors.ErrCodeUnrecognizedClassification] error.
func (t *CodeTable) Name(code string) (string, error) {
	if name, ok := t.byCode[upper(code)]; ok {
		return name, nil
	}
	return "", errors.New(errors.ErrCodeUnrecognizedClassification, "unknown %s code %q", t.kind, code)
}

// IsCode reports whether s is one of the table's codes.
func (t *CodeTable) IsCode(s string) bool {
	_, ok := t.byCode[upper(s)]
	return ok
}

// Names returns all classification names in sorted order.
func (t *CodeTable) Names() []string {
	return sortedKeys(t.byName)
}

// Codes returns all SPL codes in sorted order.
func (t *CodeTable) Codes() []string {
	return sortedKeys(t.byCode)
}

// Len returns the number of entries.
func (t *CodeTable) Len() int { return len(t.byName) }

// Resolve normalizes a [Classification] to the SPL code sent to the service.
// A ByCode value must already be a known code; a ByName value is looked up
// with [CodeTable.Code]. The zero Classification resolves to "".
func (t *CodeTable) Resolve(c Classification) (string, error) {
	switch c.kind {
	case classUnset:
		return "", nil
	case classCode:
		if !t.IsCode(c.value) {
			return "", errors.New(errors.ErrCodeUnrecognizedClassification, "unknown %s code %q", t.kind, c.value)
		}
		return upper(c.value), nil
	default:
		return t.Code(c.value)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
