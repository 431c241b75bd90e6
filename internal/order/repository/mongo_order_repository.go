package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"lessonstore/internal/domain"
	"lessonstore/internal/infrastructure/mongodb"
)

type orderDocument struct {
	ID        primitive.ObjectID  `bson:"_id"`
	Name      string              `bson:"name"`
	Phone     string              `bson:"phone"`
	Email     string              `bson:"email"`
	Address   string              `bson:"address"`
	Items     []orderItemDocument `bson:"items"`
	CreatedAt time.Time           `bson:"createdAt"`
}

type orderItemDocument struct {
	LessonID interface{} `bson:"lessonId"`
	Quantity interface{} `bson:"quantity"`
}

func newOrderDocument(order domain.Order) orderDocument {
	items := make([]orderItemDocument, len(order.Items))
	for i, item := range order.Items {
		items[i] = orderItemDocument{LessonID: item.LessonID, Quantity: item.Quantity}
	}

	return orderDocument{
		ID:        primitive.NewObjectID(),
		Name:      order.Name,
		Phone:     order.Phone,
		Email:     order.Email,
		Address:   order.Address,
		Items:     items,
		CreatedAt: order.CreatedAt,
	}
}

type MongoOrderRepository struct {
	c *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{c: db.Collection(mongodb.OrdersCollection)}
}

// Insert stores the order as one document and returns its ObjectID hex.
func (r *MongoOrderRepository) Insert(ctx context.Context, order domain.Order) (string, error) {
	doc := newOrderDocument(order)

	if _, err := r.c.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("inserting order: %w", err)
	}

	return doc.ID.Hex(), nil
}
