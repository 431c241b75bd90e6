package repository

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lessonstore/internal/domain"
	"lessonstore/internal/errors"
	"lessonstore/internal/infrastructure/mongodb"
)

type lessonDocument struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	Subject            string             `bson:"subject"`
	Location           string             `bson:"location"`
	Price              float64            `bson:"price"`
	AvailableInventory int                `bson:"availableInventory"`
	Description        string             `bson:"description"`
	Image              string             `bson:"image,omitempty"`
}

// lessonFromDocument maps a stored lesson without rejecting it: known fields
// fill the typed attributes when their stored type fits, and the whole
// document is kept so nothing the store holds is dropped.
func lessonFromDocument(doc bson.M) domain.Lesson {
	id := documentID(doc["_id"])

	raw := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		raw[k] = plainValue(v)
	}
	if _, ok := doc["_id"]; ok {
		raw["_id"] = id
	}

	price, _ := numberValue(doc[domain.LessonFieldPrice])
	inventory, _ := numberValue(doc[domain.LessonFieldAvailableInventory])

	return domain.Lesson{
		ID:                 id,
		Subject:            stringValue(doc[domain.LessonFieldSubject]),
		Location:           stringValue(doc[domain.LessonFieldLocation]),
		Price:              price,
		AvailableInventory: int(inventory),
		Description:        stringValue(doc[domain.LessonFieldDescription]),
		Image:              stringValue(doc[domain.LessonFieldImage]),
		Document:           raw,
	}
}

func documentID(v interface{}) string {
	switch id := v.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}

// plainValue turns nested BSON containers into maps and slices so the
// document encodes as ordinary JSON.
func plainValue(v interface{}) interface{} {
	switch val := v.(type) {
	case bson.M:
		out := make(map[string]interface{}, len(val))
		for k, e := range val {
			out[k] = plainValue(e)
		}
		return out
	case bson.D:
		out := make(map[string]interface{}, len(val))
		for _, e := range val {
			out[e.Key] = plainValue(e.Value)
		}
		return out
	case bson.A:
		out := make([]interface{}, len(val))
		for i, e := range val {
			out[i] = plainValue(e)
		}
		return out
	default:
		return v
	}
}

func stringValue(v interface{}) string {
	s, _ := v.(string)
	return s
}

func numberValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

type MongoRepository struct {
	c *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{c: db.Collection(mongodb.LessonsCollection)}
}

func (r *MongoRepository) FindAll(ctx context.Context, sort domain.LessonSort) ([]domain.Lesson, error) {
	opts := options.Find().SetSort(bson.D{{Key: sort.Field, Value: int(sort.Direction)}})

	cur, err := r.c.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("finding lessons: %w", err)
	}

	return decodeLessons(ctx, cur)
}

// Search matches term case-insensitively as a substring of the text fields
// and of the string form of price and availableInventory.
func (r *MongoRepository) Search(ctx context.Context, term string) ([]domain.Lesson, error) {
	cur, err := r.c.Find(ctx, searchFilter(term))
	if err != nil {
		return nil, fmt.Errorf("searching lessons: %w", err)
	}

	return decodeLessons(ctx, cur)
}

func searchFilter(term string) bson.M {
	pattern := regexp.QuoteMeta(term)
	rx := primitive.Regex{Pattern: pattern, Options: "i"}

	numericMatch := func(field string) bson.M {
		return bson.M{"$expr": bson.M{"$regexMatch": bson.M{
			"input":   bson.M{"$toString": "$" + field},
			"regex":   pattern,
			"options": "i",
		}}}
	}

	return bson.M{"$or": bson.A{
		bson.M{domain.LessonFieldSubject: rx},
		bson.M{domain.LessonFieldLocation: rx},
		bson.M{domain.LessonFieldDescription: rx},
		numericMatch(domain.LessonFieldPrice),
		numericMatch(domain.LessonFieldAvailableInventory),
	}}
}

// Update applies patch with $set. A malformed id is reported as a plain
// error, an unknown one as a NotFoundError.
func (r *MongoRepository) Update(ctx context.Context, id string, patch domain.LessonPatch) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, errors.NewInternalError(fmt.Sprintf("parsing lesson id %q", id), err)
	}

	set := bson.M{}
	for field, value := range patch {
		set[field] = value
	}

	res, err := r.c.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return 0, fmt.Errorf("updating lesson: %w", err)
	}

	if res.MatchedCount == 0 {
		return 0, errors.NewNotFoundError(fmt.Sprintf("lesson with id %s not found", id))
	}

	return res.ModifiedCount, nil
}

func (r *MongoRepository) InsertMany(ctx context.Context, lessons []domain.Lesson) ([]string, error) {
	if len(lessons) == 0 {
		return nil, nil
	}

	docs := make([]interface{}, 0, len(lessons))
	ids := make([]string, 0, len(lessons))
	for _, l := range lessons {
		doc := lessonDocument{
			ID:                 primitive.NewObjectID(),
			Subject:            l.Subject,
			Location:           l.Location,
			Price:              l.Price,
			AvailableInventory: l.AvailableInventory,
			Description:        l.Description,
			Image:              l.Image,
		}
		docs = append(docs, doc)
		ids = append(ids, doc.ID.Hex())
	}

	if _, err := r.c.InsertMany(ctx, docs); err != nil {
		return nil, fmt.Errorf("inserting lessons: %w", err)
	}

	return ids, nil
}

func (r *MongoRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.c.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("counting lessons: %w", err)
	}
	return n, nil
}

func decodeLessons(ctx context.Context, cur *mongo.Cursor) ([]domain.Lesson, error) {
	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding lessons: %w", err)
	}

	lessons := make([]domain.Lesson, 0, len(docs))
	for _, d := range docs {
		lessons = append(lessons, lessonFromDocument(d))
	}
	return lessons, nil
}
