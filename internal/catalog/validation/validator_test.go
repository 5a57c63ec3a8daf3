package validation

import (
	"context"
	"testing"

	"github.com/angelcamposm/atlas-catalog-sub002/internal/catalog/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLookups answers existence and uniqueness checks from fixed data.
type fakeLookups struct {
	existing map[string]map[uint]bool
	taken    map[string]bool // "table/column/value" -> taken
	lastScope map[string]interface{}
	lastIgnore uint
}

func (f *fakeLookups) Exists(_ context.Context, table string, id uint) (bool, error) {
	return f.existing[table][id], nil
}

func (f *fakeLookups) ValueTaken(_ context.Context, table, column string, value interface{}, scope map[string]interface{}, ignoreID uint) (bool, error) {
	f.lastScope = scope
	f.lastIgnore = ignoreID
	key := table + "/" + column + "/" + toString(value)
	return f.taken[key], nil
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func newValidator(lk *fakeLookups) *Validator {
	return &Validator{
		Table: "apis",
		Rules: []Rule{
			{Field: "name", Kind: String, Required: true, MaxLen: 10, Unique: true},
			{Field: "description", Kind: String},
			{Field: "status_id", Kind: Int, References: "api_statuses"},
			{Field: "spec", Kind: JSON},
			{Field: "role", Kind: String, Enum: []string{"owner", "member"}},
			{Field: "position", Kind: Int, Min: Limit(0)},
		},
		Lookups: lk,
	}
}

func TestValidate_CreateRequiresDeclaredFields(t *testing.T) {
	v := newValidator(&fakeLookups{})

	_, err := v.Validate(context.Background(), map[string]interface{}{}, ModeCreate, nil, 0)
	require.Error(t, err)

	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"is required"}, ve.Fields["name"])
	assert.Len(t, ve.Fields, 1)
}

func TestValidate_UpdateSkipsAbsentFields(t *testing.T) {
	v := newValidator(&fakeLookups{})

	out, err := v.Validate(context.Background(), map[string]interface{}{
		"description": "only this field",
	}, ModeUpdate, nil, 0)
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{"description": "only this field"}, out)
}

func TestValidate_ErrorsAccumulateAcrossFields(t *testing.T) {
	v := newValidator(&fakeLookups{existing: map[string]map[uint]bool{"api_statuses": {}}})

	_, err := v.Validate(context.Background(), map[string]interface{}{
		"name":      "way-too-long-for-the-rule",
		"status_id": float64(99),
		"role":      "intruder",
	}, ModeCreate, nil, 0)
	require.Error(t, err)

	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"must not exceed 10 characters"}, ve.Fields["name"])
	assert.Equal(t, []string{"does not exist"}, ve.Fields["status_id"])
	assert.Equal(t, []string{"must be one of: owner, member"}, ve.Fields["role"])
}

func TestValidate_UnknownFieldsStripped(t *testing.T) {
	v := newValidator(&fakeLookups{})

	out, err := v.Validate(context.Background(), map[string]interface{}{
		"name":       "ok",
		"created_by": float64(666),
		"id":         float64(1),
	}, ModeCreate, nil, 0)
	require.NoError(t, err)

	assert.Equal(t, "ok", out["name"])
	assert.NotContains(t, out, "created_by")
	assert.NotContains(t, out, "id")
}

func TestValidate_EmptyOptionalStringBecomesNull(t *testing.T) {
	v := newValidator(&fakeLookups{})

	out, err := v.Validate(context.Background(), map[string]interface{}{
		"name":        "ok",
		"description": "",
	}, ModeCreate, nil, 0)
	require.NoError(t, err)

	val, present := out["description"]
	assert.True(t, present)
	assert.Nil(t, val)
}

func TestValidate_EmptyRequiredStringFails(t *testing.T) {
	v := newValidator(&fakeLookups{})

	_, err := v.Validate(context.Background(), map[string]interface{}{"name": ""}, ModeCreate, nil, 0)

	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"is required"}, ve.Fields["name"])
}

func TestValidate_JSONFieldDecodedFromString(t *testing.T) {
	v := newValidator(&fakeLookups{})

	out, err := v.Validate(context.Background(), map[string]interface{}{
		"name": "ok",
		"spec": `{"openapi":"3.0.0"}`,
	}, ModeCreate, nil, 0)
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{"openapi": "3.0.0"}, out["spec"])
}

func TestValidate_InvalidJSONRejected(t *testing.T) {
	v := newValidator(&fakeLookups{})

	_, err := v.Validate(context.Background(), map[string]interface{}{
		"name": "ok",
		"spec": `{not json`,
	}, ModeCreate, nil, 0)

	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"must be valid JSON"}, ve.Fields["spec"])
}

func TestValidate_DuplicateValueReported(t *testing.T) {
	lk := &fakeLookups{taken: map[string]bool{"apis/name/dup": true}}
	v := newValidator(lk)

	_, err := v.Validate(context.Background(), map[string]interface{}{"name": "dup"}, ModeCreate, nil, 0)

	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"already exists"}, ve.Fields["name"])
}

func TestValidate_UpdatePassesIgnoreIDToUniquenessCheck(t *testing.T) {
	lk := &fakeLookups{}
	v := newValidator(lk)

	_, err := v.Validate(context.Background(), map[string]interface{}{"name": "same"}, ModeUpdate, nil, 7)
	require.NoError(t, err)

	assert.Equal(t, uint(7), lk.lastIgnore)
}

func TestValidate_ScopeResolvedFromBaseOnUpdate(t *testing.T) {
	lk := &fakeLookups{}
	v := &Validator{
		Table: "releases",
		Rules: []Rule{
			{Field: "version", Kind: String, Required: true, Unique: true, Scope: []string{"component_id"}},
			{Field: "component_id", Kind: Int, References: "components"},
		},
		Lookups: lk,
	}
	lk.existing = map[string]map[uint]bool{"components": {3: true}}

	base := map[string]interface{}{"component_id": float64(3)}
	_, err := v.Validate(context.Background(), map[string]interface{}{"version": "1.0.1"}, ModeUpdate, base, 5)
	require.NoError(t, err)

	assert.Equal(t, float64(3), lk.lastScope["component_id"])
}

func TestValidate_IntegerRules(t *testing.T) {
	v := newValidator(&fakeLookups{})

	_, err := v.Validate(context.Background(), map[string]interface{}{
		"name":     "ok",
		"position": float64(1.5),
	}, ModeCreate, nil, 0)
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"must be an integer"}, ve.Fields["position"])

	_, err = v.Validate(context.Background(), map[string]interface{}{
		"name":     "ok",
		"position": float64(-1),
	}, ModeCreate, nil, 0)
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"must be at least 0"}, ve.Fields["position"])

	out, err := v.Validate(context.Background(), map[string]interface{}{
		"name":     "ok",
		"position": float64(4),
	}, ModeCreate, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), out["position"])
}

func TestValidate_NullPreservedForOptionalField(t *testing.T) {
	v := newValidator(&fakeLookups{})

	out, err := v.Validate(context.Background(), map[string]interface{}{
		"name":      "ok",
		"status_id": nil,
	}, ModeUpdate, nil, 1)
	require.NoError(t, err)

	val, present := out["status_id"]
	assert.True(t, present)
	assert.Nil(t, val)
}
