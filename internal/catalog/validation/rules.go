package validation

// Kind is the declared value type of a field rule.
type Kind int

const (
	String Kind = iota
	Int
	Float
	Bool
	Time
	JSON
)

// Rule declares the constraints for one field of an entity. A rule set per
// entity replaces the one-request-class-per-resource pattern: new entities
// register a rule table instead of a new type hierarchy.
type Rule struct {
	Field    string
	Kind     Kind
	Required bool // enforced in create mode only when the field is absent
	MaxLen   int
	Min      *float64
	Max      *float64
	Enum     []string
	// References names the table whose primary key this field must point at.
	References string
	// Unique enforces collection-scoped uniqueness for the field. Scope
	// lists additional columns the uniqueness is scoped by (e.g. a release
	// version is unique per component_id).
	Unique bool
	Scope  []string
}

// Mode selects create or update semantics. Update follows "sometimes"
// semantics: only supplied fields are checked, absent fields stay untouched.
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

// Float pointers for Min/Max without a helper package.
func Limit(v float64) *float64 { return &v }
