package mongodb

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes is called at startup. Creating an index that already exists
// with the same keys and options is a no-op, so this is safe on every boot.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureLessons(ctx, db); err != nil {
		problems = append(problems, LessonsCollection+": "+err.Error())
	}
	if err := ensureOrders(ctx, db); err != nil {
		problems = append(problems, OrdersCollection+": "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// lessons are listed sorted by any of these fields
func ensureLessons(ctx context.Context, db *mongo.Database) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "subject", Value: 1}},
			Options: options.Index().SetName("idx_lessons_subject"),
		},
		{
			Keys:    bson.D{{Key: "location", Value: 1}},
			Options: options.Index().SetName("idx_lessons_location"),
		},
		{
			Keys:    bson.D{{Key: "price", Value: 1}},
			Options: options.Index().SetName("idx_lessons_price"),
		},
	}
	_, err := db.Collection(LessonsCollection).Indexes().CreateMany(ctx, models)
	return err
}

func ensureOrders(ctx context.Context, db *mongo.Database) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_orders_createdAt"),
		},
	}
	_, err := db.Collection(OrdersCollection).Indexes().CreateMany(ctx, models)
	return err
}
