package validation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/angelcamposm/atlas-catalog-sub002/internal/catalog/apperr"
)

// Lookups abstracts the two database reads the validator needs. Backed by
// the repository in production, by fakes in tests; the validator itself
// stays a pure function over these snapshot reads.
type Lookups interface {
	Exists(ctx context.Context, table string, id uint) (bool, error)
	ValueTaken(ctx context.Context, table, column string, value interface{}, scope map[string]interface{}, ignoreID uint) (bool, error)
}

// Validator evaluates one entity's declarative rule set against raw payloads.
type Validator struct {
	Table   string
	Rules   []Rule
	Lookups Lookups
}

// Validate checks payload against the rule set and returns the normalized
// payload containing only validated fields. Unknown fields are stripped,
// nulls are preserved and empty strings on optional fields normalize to
// null. Field failures accumulate across fields (first failing rule per
// field). base carries the current record on update so scoped uniqueness
// can resolve scope columns absent from the payload; ignoreID excludes the
// record being updated from uniqueness checks.
func (v *Validator) Validate(ctx context.Context, payload map[string]interface{}, mode Mode, base map[string]interface{}, ignoreID uint) (map[string]interface{}, error) {
	out := make(map[string]interface{})
	fieldErrs := apperr.FieldErrors{}

	for _, rule := range v.Rules {
		raw, present := payload[rule.Field]
		if !present {
			if mode == ModeCreate && rule.Required {
				fieldErrs.Add(rule.Field, "is required")
			}
			continue
		}

		if raw == nil {
			if rule.Required {
				fieldErrs.Add(rule.Field, "is required")
				continue
			}
			out[rule.Field] = nil
			continue
		}

		value, msg := normalize(rule, raw)
		if msg != "" {
			fieldErrs.Add(rule.Field, msg)
			continue
		}
		if value == nil {
			// Empty string on an optional field: store null, never "".
			if rule.Required {
				fieldErrs.Add(rule.Field, "is required")
				continue
			}
			out[rule.Field] = nil
			continue
		}

		if rule.References != "" {
			id, ok := asID(value)
			if !ok {
				fieldErrs.Add(rule.Field, "does not exist")
				continue
			}
			exists, err := v.Lookups.Exists(ctx, rule.References, id)
			if err != nil {
				return nil, err
			}
			if !exists {
				fieldErrs.Add(rule.Field, "does not exist")
				continue
			}
		}

		if rule.Unique {
			scope := make(map[string]interface{}, len(rule.Scope))
			for _, col := range rule.Scope {
				if sv, ok := out[col]; ok {
					scope[col] = sv
				} else if sv, ok := payload[col]; ok {
					scope[col] = sv
				} else if base != nil {
					scope[col] = base[col]
				}
			}
			taken, err := v.Lookups.ValueTaken(ctx, v.Table, rule.Field, value, scope, ignoreID)
			if err != nil {
				return nil, err
			}
			if taken {
				fieldErrs.Add(rule.Field, "already exists")
				continue
			}
		}

		out[rule.Field] = value
	}

	if len(fieldErrs) > 0 {
		return nil, apperr.NewValidationError(fieldErrs)
	}
	return out, nil
}

// normalize applies the type, length, range and enum checks for one rule.
// Returns the coerced value, or a non-empty message on failure. A nil value
// with no message means "explicitly empty" (optional empty string).
func normalize(rule Rule, raw interface{}) (interface{}, string) {
	switch rule.Kind {
	case String:
		s, ok := raw.(string)
		if !ok {
			return nil, "must be a string"
		}
		if s == "" {
			return nil, ""
		}
		if rule.MaxLen > 0 && utf8.RuneCountInString(s) > rule.MaxLen {
			return nil, fmt.Sprintf("must not exceed %d characters", rule.MaxLen)
		}
		if len(rule.Enum) > 0 && !contains(rule.Enum, s) {
			return nil, "must be one of: " + strings.Join(rule.Enum, ", ")
		}
		return s, ""

	case Int:
		n, ok := asInt64(raw)
		if !ok {
			return nil, "must be an integer"
		}
		if msg := checkRange(rule, float64(n)); msg != "" {
			return nil, msg
		}
		return n, ""

	case Float:
		f, ok := asFloat64(raw)
		if !ok {
			return nil, "must be a number"
		}
		if msg := checkRange(rule, f); msg != "" {
			return nil, msg
		}
		return f, ""

	case Bool:
		b, ok := raw.(bool)
		if !ok {
			return nil, "must be a boolean"
		}
		return b, ""

	case Time:
		s, ok := raw.(string)
		if !ok {
			return nil, "must be a valid timestamp"
		}
		if s == "" {
			return nil, ""
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, "must be a valid timestamp"
		}
		return t, ""

	case JSON:
		switch val := raw.(type) {
		case string:
			if val == "" {
				return nil, ""
			}
			var decoded interface{}
			if err := json.Unmarshal([]byte(val), &decoded); err != nil {
				return nil, "must be valid JSON"
			}
			return decoded, ""
		case map[string]interface{}, []interface{}:
			return val, ""
		default:
			return nil, "must be valid JSON"
		}
	}

	return raw, ""
}

func checkRange(rule Rule, v float64) string {
	if rule.Min != nil && v < *rule.Min {
		return fmt.Sprintf("must be at least %v", *rule.Min)
	}
	if rule.Max != nil && v > *rule.Max {
		return fmt.Sprintf("must not exceed %v", *rule.Max)
	}
	return ""
}

func asInt64(raw interface{}) (int64, bool) {
	switch n := raw.(type) {
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	}
	return 0, false
}

func asFloat64(raw interface{}) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func asID(value interface{}) (uint, bool) {
	n, ok := asInt64(value)
	if !ok || n <= 0 {
		return 0, false
	}
	return uint(n), true
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
