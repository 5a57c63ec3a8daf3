// Package repository is the persistence boundary for every catalog
// collection. One GORM-backed implementation serves all entities through
// their registry definitions; models only declare schema.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/angelcamposm/atlas-catalog-sub002/internal/catalog/apperr"
	"github.com/angelcamposm/atlas-catalog-sub002/internal/catalog/registry"
	"gorm.io/gorm"
)

// Record is the untyped row representation used at the pipeline boundary.
type Record = map[string]interface{}

// Page is the paginated list result.
type Page struct {
	Items      []Record
	Page       int
	TotalPages int
	Total      int64
}

// DefaultPageSize matches the original catalog's list page length.
const DefaultPageSize = 15

// MaxPageSize caps client-supplied page sizes.
const MaxPageSize = 100

// Repository provides create/read/update/delete/list over the relational
// store for any registered entity.
type Repository struct {
	db *gorm.DB
}

// New creates a repository over the given database handle.
func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new row and returns it with its assigned id and
// timestamps. A uniqueness or foreign-key constraint that slips through
// validation (the race window) surfaces as a ConstraintError.
func (r *Repository) Create(ctx context.Context, def *registry.Definition, payload Record) (Record, error) {
	m := def.NewModel()
	if err := decodeInto(payload, m); err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, translateWriteError(err)
	}

	return encodeRecord(m)
}

// GetByID fetches one row by primary key.
func (r *Repository) GetByID(ctx context.Context, def *registry.Definition, id uint) (Record, error) {
	m := def.NewModel()
	if err := r.db.WithContext(ctx).First(m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return encodeRecord(m)
}

// Update applies only the supplied columns to the row and returns the fresh
// record. Absent fields are left untouched.
func (r *Repository) Update(ctx context.Context, def *registry.Definition, id uint, partial Record) (Record, error) {
	cols := make(Record, len(partial))
	for k, v := range partial {
		cols[k] = v
	}
	// Decoded JSON values must be re-encoded before hitting the driver.
	for _, field := range def.JSONFields() {
		if v, ok := cols[field]; ok && v != nil {
			data, err := json.Marshal(v)
			if err != nil {
				return nil, err
			}
			cols[field] = json.RawMessage(data)
		}
	}

	tx := r.db.WithContext(ctx).Model(def.NewModel()).Where("id = ?", id).Updates(cols)
	if tx.Error != nil {
		return nil, translateWriteError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		// Row vanished between the controller's existence check and here.
		if _, err := r.GetByID(ctx, def, id); err != nil {
			return nil, err
		}
	}

	return r.GetByID(ctx, def, id)
}

// Delete removes the row. Restrict semantics: a row referenced by any of
// the entity's declared inbound references cannot be deleted.
func (r *Repository) Delete(ctx context.Context, def *registry.Definition, id uint) error {
	for _, ref := range def.ReferencedBy {
		var count int64
		err := r.db.WithContext(ctx).Table(ref.Table).
			Where(fmt.Sprintf("%s = ?", ref.Column), id).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return &apperr.ReferencedError{Table: ref.Table}
		}
	}

	tx := r.db.WithContext(ctx).Delete(def.NewModel(), id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrForeignKeyViolated) {
			return &apperr.ReferencedError{Table: "dependent records"}
		}
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// List returns one page of rows with a stable default ordering. Page
// numbers are 1-based; a page beyond the end yields an empty item list
// with a valid envelope, not an error.
func (r *Repository) List(ctx context.Context, def *registry.Definition, page, pageSize int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(def.NewModel()).Count(&total).Error; err != nil {
		return nil, err
	}

	order := def.DefaultOrder
	if order == "" {
		order = "id ASC"
	}

	slice := def.NewSlice()
	err := r.db.WithContext(ctx).Model(def.NewModel()).
		Order(order).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(slice).Error
	if err != nil {
		return nil, err
	}

	sliceVal := reflect.ValueOf(slice).Elem()
	items := make([]Record, 0, sliceVal.Len())
	for i := 0; i < sliceVal.Len(); i++ {
		rec, err := encodeRecord(sliceVal.Index(i).Addr().Interface())
		if err != nil {
			return nil, err
		}
		items = append(items, rec)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &Page{Items: items, Page: page, TotalPages: totalPages, Total: total}, nil
}

// Exists reports whether a row with the given id exists in table. Backs
// the validator's foreign-key rule.
func (r *Repository) Exists(ctx context.Context, table string, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table(table).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ValueTaken reports whether another row holds value in column, within the
// given scope columns, excluding ignoreID when updating. Backs the
// validator's uniqueness rule; the unique index remains the real enforcer.
func (r *Repository) ValueTaken(ctx context.Context, table, column string, value interface{}, scope map[string]interface{}, ignoreID uint) (bool, error) {
	q := r.db.WithContext(ctx).Table(table).Where(fmt.Sprintf("%s = ?", column), value)
	for col, sv := range scope {
		if sv == nil {
			q = q.Where(fmt.Sprintf("%s IS NULL", col))
		} else {
			q = q.Where(fmt.Sprintf("%s = ?", col), sv)
		}
	}
	if ignoreID > 0 {
		q = q.Where("id <> ?", ignoreID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// decodeInto copies a validated payload into a model struct via its JSON
// field names, which match column names under GORM's naming strategy.
func decodeInto(payload Record, model interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, model)
}

// encodeRecord projects a model struct into the pipeline's map shape.
func encodeRecord(model interface{}) (Record, error) {
	data, err := json.Marshal(model)
	if err != nil {
		return nil, err
	}
	rec := Record{}
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return &apperr.ConstraintError{Err: err}
	}
	return err
}
