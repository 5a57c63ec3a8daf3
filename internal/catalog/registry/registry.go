// Package registry declares every catalog entity as data: its REST
// placement, rule set, hidden fields and delete dependencies. Adding an
// entity means adding a model and a Definition entry, not a new handler,
// validator or repository.
package registry

import (
	"context"
	"reflect"

	"github.com/angelcamposm/atlas-catalog-sub002/internal/catalog/validation"
)

// Record is the untyped row representation flowing through the pipeline.
type Record = map[string]interface{}

// Reference names a table/column pair that points at an entity. Deletes
// are restricted while any referencing row exists.
type Reference struct {
	Table  string
	Column string
}

// Hook runs before a write. It may rewrite the payload (e.g. replace a
// plaintext secret with its ciphertext) and may return fields to merge into
// the response only, for values revealed exactly once. base is the current
// record on update, nil on create.
type Hook func(ctx context.Context, payload Record, base Record) (reveal Record, err error)

// Definition declares one catalog entity.
type Definition struct {
	Area       string
	Collection string
	Table      string
	Model      interface{}

	Rules  []validation.Rule
	Hidden []string

	// DefaultOrder overrides the stable "id ASC" list ordering.
	DefaultOrder string

	// ReferencedBy lists inbound references checked before delete.
	ReferencedBy []Reference

	// Hierarchical marks self-referencing trees; parent_id writes get an
	// ancestor-chain cycle check.
	Hierarchical bool

	// Compute appends derived fields (is_expired, deployment status) to the
	// shaped record.
	Compute func(rec Record)

	BeforeCreate Hook
	BeforeUpdate Hook
}

// NewModel returns a fresh pointer to the entity's model struct.
func (d *Definition) NewModel() interface{} {
	return reflect.New(reflect.TypeOf(d.Model).Elem()).Interface()
}

// NewSlice returns a fresh pointer to a slice of the entity's model struct.
func (d *Definition) NewSlice() interface{} {
	elem := reflect.TypeOf(d.Model).Elem()
	return reflect.New(reflect.SliceOf(elem)).Interface()
}

// JSONFields lists the fields declared with the json kind; the repository
// re-encodes their decoded values before partial updates.
func (d *Definition) JSONFields() []string {
	var fields []string
	for _, r := range d.Rules {
		if r.Kind == validation.JSON {
			fields = append(fields, r.Field)
		}
	}
	return fields
}

// Registry holds every registered entity definition.
type Registry struct {
	defs  []*Definition
	byKey map[string]*Definition
}

func newRegistry(defs []*Definition) *Registry {
	r := &Registry{defs: defs, byKey: make(map[string]*Definition, len(defs))}
	for _, d := range defs {
		r.byKey[d.Area+"/"+d.Collection] = d
	}
	return r
}

// All returns every definition in registration order.
func (r *Registry) All() []*Definition {
	return r.defs
}

// Lookup resolves a definition by its area and collection path segments.
func (r *Registry) Lookup(area, collection string) (*Definition, bool) {
	d, ok := r.byKey[area+"/"+collection]
	return d, ok
}

// Models returns the model prototypes for migration.
func (r *Registry) Models() []interface{} {
	models := make([]interface{}, 0, len(r.defs))
	for _, d := range r.defs {
		models = append(models, d.Model)
	}
	return models
}
