package database

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository keeps each kind in its own collection.
type MongoRepository[T any, PT Recordable[T]] struct {
	collection *mongo.Collection
}

func NewMongoRepository[T any, PT Recordable[T]](database *mongo.Database) *MongoRepository[T, PT] {
	return &MongoRepository[T, PT]{
		collection: database.Collection(PT(new(T)).RecordKind()),
	}
}

func createMongoIndexes(ctx context.Context, database *mongo.Database, kinds []string) {
	for _, kind := range kinds {
		_, err := database.Collection(kind).Indexes().CreateMany(ctx, []mongo.IndexModel{
			{
				Keys: bson.D{{Key: "id", Value: 1}},
			},
			{
				Keys: bson.D{{Key: "created_at", Value: -1}},
			},
		}, options.CreateIndexes())
		if err != nil {
			log.Error().Err(err).Str("collection", kind).Msg("Creating Index")
		}
	}
}

func (r *MongoRepository[T, PT]) Insert(ctx context.Context, record *T) (string, error) {
	meta := PT(record).Meta()
	meta.ID = primitive.NewObjectID().Hex()
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now().UTC()
	}

	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		return "", err
	}

	return meta.ID, nil
}

func (r *MongoRepository[T, PT]) List(ctx context.Context, listOptions ListOptions) ([]*T, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(listOptions.limit()))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	records := []*T{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	return records, nil
}
