package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/go-exercise-tracker/internal/domain/entity"
	"github.com/oksasatya/go-exercise-tracker/internal/domain/repository"
)

type exerciseDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Username    string             `bson:"username"`
	Description string             `bson:"description"`
	Duration    int                `bson:"duration"`
	Date        time.Time          `bson:"date"`
	Category    string             `bson:"category"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *exerciseDoc) toEntity() entity.Exercise {
	return entity.Exercise{
		ID:          d.ID.Hex(),
		Username:    d.Username,
		Description: d.Description,
		Duration:    d.Duration,
		Date:        d.Date.UTC(),
		Category:    entity.Category(d.Category).OrOther(),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

// ExerciseRepository implements repository.ExerciseRepository. Every filter
// carries the owner's username.
type ExerciseRepository struct {
	coll *mongo.Collection
}

func NewExerciseRepository(db *mongo.Database) *ExerciseRepository {
	return &ExerciseRepository{coll: db.Collection(exercisesCollection)}
}

func (r *ExerciseRepository) Create(ctx context.Context, ex *entity.Exercise) error {
	now := time.Now().UTC()
	doc := exerciseDoc{
		ID:          primitive.NewObjectID(),
		Username:    ex.Username,
		Description: ex.Description,
		Duration:    ex.Duration,
		Date:        ex.Date,
		Category:    string(ex.Category.OrOther()),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("error inserting exercise: %w", err)
	}
	*ex = doc.toEntity()
	return nil
}

func (r *ExerciseRepository) ListByOwner(ctx context.Context, owner string) ([]entity.Exercise, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"username": owner}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding exercises: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []exerciseDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding exercises: %w", err)
	}
	out := make([]entity.Exercise, len(docs))
	for i := range docs {
		out[i] = docs[i].toEntity()
	}
	return out, nil
}

func (r *ExerciseRepository) GetByID(ctx context.Context, id, owner string) (*entity.Exercise, error) {
	filter, ok := ownedFilter(id, owner)
	if !ok {
		return nil, repository.ErrNotFound
	}
	var doc exerciseDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("error finding exercise: %w", err)
	}
	ex := doc.toEntity()
	return &ex, nil
}

func (r *ExerciseRepository) Update(ctx context.Context, owner string, ex *entity.Exercise) error {
	filter, ok := ownedFilter(ex.ID, owner)
	if !ok {
		return repository.ErrNotFound
	}
	set := bson.M{
		"description": ex.Description,
		"duration":    ex.Duration,
		"date":        ex.Date,
		"category":    string(ex.Category.OrOther()),
		"updatedAt":   time.Now().UTC(),
	}
	var doc exerciseDoc
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("error updating exercise: %w", err)
	}
	*ex = doc.toEntity()
	return nil
}

func (r *ExerciseRepository) Delete(ctx context.Context, id, owner string) error {
	filter, ok := ownedFilter(id, owner)
	if !ok {
		return repository.ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("error deleting exercise: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ownedFilter matches one document by id and owner. Malformed ids match nothing.
func ownedFilter(id, owner string) (bson.M, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	return bson.M{"_id": oid, "username": owner}, true
}

var _ repository.ExerciseRepository = (*ExerciseRepository)(nil)
