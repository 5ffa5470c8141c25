// Package mongostore is a backend.RowStore over MongoDB: one collection per table,
// one document per row, fields named after the row's bson tags.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront_backend/internal/platform/backend"
)

// Store implements backend.RowStore with the official Mongo driver.
type Store struct {
	db *mongo.Database
}

var _ backend.RowStore = (*Store)(nil)

// New creates a Store on db.
func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

// field maps the row-store primary key column onto the document _id.
func field(column string) string {
	if column == "id" {
		return "_id"
	}
	return column
}

func filter(q backend.Query) bson.D {
	f := bson.D{}
	for _, c := range q.Filters {
		f = append(f, bson.E{Key: field(c.Column), Value: c.Value})
	}
	return f
}

func sort(q backend.Query) bson.D {
	if q.Order == nil {
		return nil
	}
	dir := -1
	if q.Order.Ascending {
		dir = 1
	}
	return bson.D{{Key: field(q.Order.Column), Value: dir}}
}

func noRows(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return backend.ErrNoRows
	}
	return err
}

func (s *Store) Select(ctx context.Context, q backend.Query, dest any) error {
	opts := options.Find()
	if srt := sort(q); srt != nil {
		opts.SetSort(srt)
	}
	cur, err := s.db.Collection(q.Table).Find(ctx, filter(q), opts)
	if err != nil {
		return err
	}
	return cur.All(ctx, dest)
}

func (s *Store) Single(ctx context.Context, q backend.Query, dest any) error {
	opts := options.FindOne()
	if srt := sort(q); srt != nil {
		opts.SetSort(srt)
	}
	return noRows(s.db.Collection(q.Table).FindOne(ctx, filter(q), opts).Decode(dest))
}

func (s *Store) Insert(ctx context.Context, table string, row any, dest any) error {
	coll := s.db.Collection(table)
	res, err := coll.InsertOne(ctx, row)
	if err != nil {
		return err
	}
	if dest == nil {
		return nil
	}
	return coll.FindOne(ctx, bson.D{{Key: "_id", Value: res.InsertedID}}).Decode(dest)
}

func (s *Store) Update(ctx context.Context, q backend.Query, patch map[string]any, dest any) error {
	if len(q.Filters) == 0 {
		return fmt.Errorf("update requires at least one filter")
	}
	coll := s.db.Collection(q.Table)
	set := bson.M{}
	for k, v := range patch {
		set[field(k)] = v
	}
	update := bson.D{{Key: "$set", Value: set}}

	if dest == nil {
		_, err := coll.UpdateMany(ctx, filter(q), update)
		return err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return noRows(coll.FindOneAndUpdate(ctx, filter(q), update, opts).Decode(dest))
}

func (s *Store) Delete(ctx context.Context, q backend.Query) error {
	if len(q.Filters) == 0 {
		return backend.ErrUnfilteredDelete
	}
	_, err := s.db.Collection(q.Table).DeleteMany(ctx, filter(q))
	return err
}
