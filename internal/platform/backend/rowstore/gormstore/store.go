// Package gormstore is a backend.RowStore over any SQL database gorm can open.
package gormstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront_backend/internal/platform/backend"
)

// Store implements backend.RowStore with gorm.
type Store struct {
	db *gorm.DB
}

var _ backend.RowStore = (*Store)(nil)

// New creates a Store over db.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func conditions(q backend.Query) []clause.Expression {
	exprs := make([]clause.Expression, 0, len(q.Filters))
	for _, f := range q.Filters {
		exprs = append(exprs, clause.Eq{Column: clause.Column{Name: f.Column}, Value: f.Value})
	}
	return exprs
}

// scoped returns a session on q.Table with q's filters and ordering applied.
func (s *Store) scoped(ctx context.Context, q backend.Query) *gorm.DB {
	tx := s.db.WithContext(ctx).Table(q.Table)
	for _, c := range conditions(q) {
		tx = tx.Where(c)
	}
	if q.Order != nil {
		tx = tx.Order(clause.OrderByColumn{
			Column: clause.Column{Name: q.Order.Column},
			Desc:   !q.Order.Ascending,
		})
	}
	return tx
}

func (s *Store) Select(ctx context.Context, q backend.Query, dest any) error {
	return s.scoped(ctx, q).Find(dest).Error
}

func (s *Store) Single(ctx context.Context, q backend.Query, dest any) error {
	if err := s.scoped(ctx, q).Take(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return backend.ErrNoRows
		}
		return err
	}
	return nil
}

// Insert creates row in table. row may be a struct or a pointer to one.
func (s *Store) Insert(ctx context.Context, table string, row any, dest any) error {
	ptr := addressable(row)
	if err := s.db.WithContext(ctx).Table(table).Create(ptr).Error; err != nil {
		return err
	}
	if dest == nil {
		return nil
	}
	return copyInto(dest, ptr)
}

// Update applies patch, then reads the single matching row back into dest.
func (s *Store) Update(ctx context.Context, q backend.Query, patch map[string]any, dest any) error {
	if len(q.Filters) == 0 {
		return fmt.Errorf("update requires at least one filter")
	}
	result := s.scoped(ctx, backend.Query{Table: q.Table, Filters: q.Filters}).Updates(patch)
	if result.Error != nil {
		return result.Error
	}
	if dest == nil {
		return nil
	}
	if result.RowsAffected == 0 {
		return backend.ErrNoRows
	}
	return s.Single(ctx, q, dest)
}

func (s *Store) Delete(ctx context.Context, q backend.Query) error {
	if len(q.Filters) == 0 {
		return backend.ErrUnfilteredDelete
	}
	return s.db.WithContext(ctx).
		Exec("DELETE FROM ? WHERE ?", clause.Table{Name: q.Table}, clause.And(conditions(q)...)).
		Error
}

func addressable(row any) any {
	v := reflect.ValueOf(row)
	if v.Kind() == reflect.Pointer {
		return row
	}
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	return p.Interface()
}

// copyInto assigns *src to *dest when the types match and falls back to a
// JSON round-trip otherwise.
func copyInto(dest, src any) error {
	dv, sv := reflect.ValueOf(dest), reflect.ValueOf(src)
	if dv.Kind() == reflect.Pointer && dv.Type() == sv.Type() {
		dv.Elem().Set(sv.Elem())
		return nil
	}
	b, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("failed to copy inserted row: %w", err)
	}
	return json.Unmarshal(b, dest)
}
