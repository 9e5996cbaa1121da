package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"preorder/internal/model"
)

// FormRepo handles MongoDB operations for form schema snapshots. The
// provider stays the source of truth; snapshots let the service come back
// up without an immediate provider round-trip.
type FormRepo interface {
	Upsert(ctx context.Context, schema *model.FormSchema) error
	GetByID(ctx context.Context, id string) (*model.FormSchema, error)
}

type formSnapshot struct {
	ID        string           `bson:"_id"`
	Schema    model.FormSchema `bson:"schema"`
	FetchedAt time.Time        `bson:"fetchedAt"`
}

type formRepo struct {
	collection *mongo.Collection
}

// NewFormRepo creates a new form repository
func NewFormRepo(db *mongo.Database) FormRepo {
	return &formRepo{
		collection: db.Collection("forms"),
	}
}

func (r *formRepo) Upsert(ctx context.Context, schema *model.FormSchema) error {
	doc := formSnapshot{
		ID:        schema.ID,
		Schema:    *schema,
		FetchedAt: time.Now(),
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": schema.ID}, doc, opts)
	return err
}

func (r *formRepo) GetByID(ctx context.Context, id string) (*model.FormSchema, error) {
	var doc formSnapshot
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc.Schema, nil
}
