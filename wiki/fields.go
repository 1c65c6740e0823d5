package wiki

import (
	"regexp"
)

// Field identifies one scalar property to extract from an infobox's
// text.
//
// The expression must have exactly one capture group, which is the
// extracted value.
type Field struct {
	// Name names the property ("birth date", "polar radius").
	// FieldNotFound errors report it.
	Name string

	re *regexp.Regexp
}

// NewField compiles a Field from a regular expression with one
// capture group.
func NewField(name, expr string) (Field, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Field{}, err
	}
	return Field{Name: name, re: re}, nil
}

// MustField is NewField that panics on a bad expression.
func MustField(name, expr string) Field {
	f, err := NewField(name, expr)
	if err != nil {
		panic(err)
	}
	return f
}

// The stock fields.
//
// The expressions run against cleaned infobox text (see CleanText),
// so runs of spaces and newlines are already collapsed.
var (
	// BirthDate wants a yyyy-mm-dd date after "Born".
	BirthDate = MustField("birth date", `(?si)Born\D*(\d{4}-\d{2}-\d{2})`)

	// PolarRadius is the radius in km, skipping an optional
	// leading reference number.
	PolarRadius = MustField("polar radius", `(?si)Polar radius.*?(?: ?\d+ )?([\d,.]+).*?km`)

	// Address stops at a following "Street" or "Coordinates"
	// label, or at the end of the text.
	Address = MustField("address", `(?si)Address\s*:?\s*([\d\w\s.,]+?)\s*(?:Street|Coordinates|$)`)

	// Elevation is in feet (AMSL).
	Elevation = MustField("elevation", `(?si)Elevation AMSL.*?([\d,.]+).*?ft`)
)

// RunwayLength builds the field for the length of one named runway,
// which is whatever follows the runway's own line in the infobox.
func RunwayLength(runway string) Field {
	return Field{
		Name: "runway " + runway + " length",
		re:   regexp.MustCompile(`(?i)` + regexp.QuoteMeta(runway) + `\n([^\n]*)`),
	}
}

// Extract runs the field's expression against the text.
//
// The false return is the normal "not there" result, not an error.
func (f Field) Extract(text string) (string, bool) {
	m := f.re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}
