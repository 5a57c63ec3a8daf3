// Package formflow drives a multi-step form: an ordered sequence of steps,
// per-step validation, and a final submit that sends the accumulated field
// state to the catalog service. It reproduces the admin frontend's wizard
// behavior for Go callers and tests.
package formflow

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	"github.com/angelcamposm/atlas-catalog-sub002/pkg/client"
)

// Field declares one form input and its step-local validation.
type Field struct {
	Name     string
	Required bool
	MaxLen   int
	// Numeric fields are coerced from strings to numbers on submit.
	Numeric bool
	// JSON fields hold JSON text that is parsed into structured data on
	// submit.
	JSON bool
}

// Step is one page of the wizard.
type Step struct {
	Name   string
	Fields []Field
}

// Flow is the wizard state machine. Steps are 1-based; submit is only
// reachable on the last step.
type Flow struct {
	steps   []Step
	col     *client.Collection
	editID  *uint
	current int
	values  map[string]interface{}
	errors  map[string][]string
}

// New starts a flow at step 1 with empty field values, submitting as a
// create against col.
func New(col *client.Collection, steps []Step) *Flow {
	return &Flow{
		steps:   steps,
		col:     col,
		current: 1,
		values:  make(map[string]interface{}),
		errors:  make(map[string][]string),
	}
}

// NewDuplicate starts a flow pre-populated from record sourceID, copying
// every field except identity and ownership, then submits as a create.
func NewDuplicate(ctx context.Context, col *client.Collection, steps []Step, sourceID uint) (*Flow, error) {
	f := New(col, steps)
	source, err := col.Get(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	f.prefill(source)
	return f, nil
}

// NewEdit starts a flow pre-populated from record id and submits as an
// update to that record.
func NewEdit(ctx context.Context, col *client.Collection, steps []Step, id uint) (*Flow, error) {
	f, err := NewDuplicate(ctx, col, steps, id)
	if err != nil {
		return nil, err
	}
	f.editID = &id
	return f, nil
}

// identity and ownership fields never copied into a form.
var excludedOnPrefill = map[string]bool{
	"id":         true,
	"created_by": true,
	"updated_by": true,
	"created_at": true,
	"updated_at": true,
}

func (f *Flow) prefill(source client.Record) {
	for _, step := range f.steps {
		for _, field := range step.Fields {
			if excludedOnPrefill[field.Name] {
				continue
			}
			if v, ok := source[field.Name]; ok && v != nil {
				f.values[field.Name] = v
			}
		}
	}
}

// Step returns the current 1-based step index.
func (f *Flow) Step() int {
	return f.current
}

// Set records a field value and clears that field's errors, matching the
// frontend behavior of clearing inline errors as soon as a field is edited.
func (f *Flow) Set(name string, value interface{}) {
	f.values[name] = value
	delete(f.errors, name)
}

// Value returns the current value of a field.
func (f *Flow) Value(name string) interface{} {
	return f.values[name]
}

// Errors returns the field errors surfaced by the last Next/Submit. Only
// fields of the step that was validated appear.
func (f *Flow) Errors() map[string][]string {
	return f.errors
}

// Next validates the current step's fields only. On success it advances
// (clamped at the last step) and reports true; on failure it stays put and
// surfaces errors for this step's fields only.
func (f *Flow) Next() bool {
	if !f.validateStep(f.current) {
		return false
	}
	if f.current < len(f.steps) {
		f.current++
	}
	return true
}

// Previous moves one step back, clamped at step 1. Never validates.
func (f *Flow) Previous() {
	if f.current > 1 {
		f.current--
	}
}

// Submit re-validates the last step, assembles the accumulated cross-step
// state into one payload and calls the create/update endpoint. On remote
// failure the form state stays intact and the error is retryable.
func (f *Flow) Submit(ctx context.Context) (client.Record, error) {
	if f.current != len(f.steps) {
		return nil, ErrNotAtFinalStep
	}
	if !f.validateStep(f.current) {
		return nil, ErrStepInvalid
	}

	payload := f.assemble()

	if f.editID != nil {
		return f.col.Update(ctx, *f.editID, payload)
	}
	return f.col.Create(ctx, payload)
}

// LoadOptions fetches reference collections for dropdowns, in parallel and
// independent of step navigation. A failed source degrades to an empty
// list rather than failing the whole load.
func (f *Flow) LoadOptions(ctx context.Context, sources map[string]*client.Collection) map[string][]client.Record {
	options := make(map[string][]client.Record, len(sources))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for name, col := range sources {
		wg.Add(1)
		go func(name string, col *client.Collection) {
			defer wg.Done()
			items := []client.Record{}
			if page, err := col.List(ctx, 1); err == nil {
				items = page.Items
			}
			mu.Lock()
			options[name] = items
			mu.Unlock()
		}(name, col)
	}

	wg.Wait()
	return options
}

func (f *Flow) validateStep(index int) bool {
	step := f.steps[index-1]
	stepErrors := make(map[string][]string)

	for _, field := range step.Fields {
		raw, present := f.values[field.Name]

		if !present || raw == nil || raw == "" {
			if field.Required {
				stepErrors[field.Name] = append(stepErrors[field.Name], "is required")
			}
			continue
		}

		if s, ok := raw.(string); ok {
			if field.MaxLen > 0 && len([]rune(s)) > field.MaxLen {
				stepErrors[field.Name] = append(stepErrors[field.Name],
					"must not exceed "+strconv.Itoa(field.MaxLen)+" characters")
				continue
			}
			if field.Numeric {
				if _, err := strconv.ParseFloat(s, 64); err != nil {
					stepErrors[field.Name] = append(stepErrors[field.Name], "must be a number")
					continue
				}
			}
			if field.JSON {
				if !json.Valid([]byte(s)) {
					stepErrors[field.Name] = append(stepErrors[field.Name], "must be valid JSON")
					continue
				}
			}
		}
	}

	f.errors = stepErrors
	return len(stepErrors) == 0
}

// assemble builds the submit payload: empty-string optionals become null,
// numeric strings become numbers, JSON text becomes structured data.
func (f *Flow) assemble() client.Record {
	payload := client.Record{}

	for _, step := range f.steps {
		for _, field := range step.Fields {
			raw, present := f.values[field.Name]
			if !present {
				continue
			}

			if raw == "" {
				payload[field.Name] = nil
				continue
			}

			if s, ok := raw.(string); ok {
				if field.Numeric {
					if n, err := strconv.ParseInt(s, 10, 64); err == nil {
						payload[field.Name] = n
						continue
					}
					if fl, err := strconv.ParseFloat(s, 64); err == nil {
						payload[field.Name] = fl
						continue
					}
				}
				if field.JSON {
					var decoded interface{}
					if err := json.Unmarshal([]byte(s), &decoded); err == nil {
						payload[field.Name] = decoded
						continue
					}
				}
			}

			payload[field.Name] = raw
		}
	}

	return payload
}
