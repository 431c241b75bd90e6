package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"lessonstore/internal/domain"
	"lessonstore/internal/infrastructure/mongodb"
	"lessonstore/internal/testutil"
)

func sampleOrder() domain.Order {
	return domain.Order{
		Name:    "Ada Lovelace",
		Phone:   "07000000000",
		Email:   "ada@example.com",
		Address: "12 Analytical Row",
		Items: []domain.OrderItem{
			{LessonID: "65f0c0ffee0000000000aaaa", Quantity: 2},
			{LessonID: "65f0c0ffee0000000000bbbb", Quantity: 1},
		},
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestMongoOrderRepository_Insert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("writes one document", func(mt *mtest.T) {
		repo := NewMongoOrderRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id, err := repo.Insert(context.Background(), sampleOrder())
		require.NoError(mt, err)
		_, err = primitive.ObjectIDFromHex(id)
		assert.NoError(mt, err)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "insert", evt.CommandName)
		assert.Equal(mt, mongodb.OrdersCollection, evt.Command.Lookup("insert").StringValue())

		docs, err := evt.Command.Lookup("documents").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, docs, 1)

		doc := docs[0].Document()
		assert.Equal(mt, id, doc.Lookup("_id").ObjectID().Hex())
		assert.Equal(mt, "Ada Lovelace", doc.Lookup("name").StringValue())
		items, err := doc.Lookup("items").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, items, 2)
		assert.Equal(mt, "65f0c0ffee0000000000aaaa", items[0].Document().Lookup("lessonId").StringValue())
		assert.Equal(mt, int32(2), items[0].Document().Lookup("quantity").Int32())
		assert.Equal(mt, sampleOrder().CreatedAt.UnixMilli(), doc.Lookup("createdAt").DateTime())
	})

	mt.Run("stores item values as submitted", func(mt *mtest.T) {
		repo := NewMongoOrderRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		order := sampleOrder()
		order.Items = []domain.OrderItem{{LessonID: json.Number("42"), Quantity: "2"}}

		_, err := repo.Insert(context.Background(), order)
		require.NoError(mt, err)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		docs, err := evt.Command.Lookup("documents").Array().Values()
		require.NoError(mt, err)
		items, err := docs[0].Document().Lookup("items").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, items, 1)
		assert.Equal(mt, int64(42), items[0].Document().Lookup("lessonId").Int64())
		assert.Equal(mt, "2", items[0].Document().Lookup("quantity").StringValue())
	})

	mt.Run("store error", func(mt *mtest.T) {
		repo := NewMongoOrderRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		id, err := repo.Insert(context.Background(), sampleOrder())
		require.Error(mt, err)
		assert.Empty(mt, id)
		assert.Contains(mt, err.Error(), "inserting order")
	})
}

// Integration Tests

func TestMongoOrderRepository_Insert_Integration(t *testing.T) {
	db := testutil.SetupTestMongo(t)
	repo := NewMongoOrderRepository(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	id, err := repo.Insert(ctx, sampleOrder())
	require.NoError(t, err)

	oid, err := primitive.ObjectIDFromHex(id)
	require.NoError(t, err)

	var stored orderDocument
	err = db.Collection(mongodb.OrdersCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&stored)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", stored.Email)
	assert.Len(t, stored.Items, 2)
	assert.True(t, stored.CreatedAt.Equal(sampleOrder().CreatedAt))
}
