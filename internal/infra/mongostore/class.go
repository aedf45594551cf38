package mongostore

import (
	"context"

	"course-enrollment/internal/domain/class"
	"course-enrollment/internal/infra"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ClassRepository struct {
	coll *mongo.Collection
}

func NewClassRepository(db *mongo.Database) *ClassRepository {
	return &ClassRepository{coll: db.Collection(classesCollection)}
}

func (r *ClassRepository) Create(ctx context.Context, c *class.Class) error {
	if _, err := r.coll.InsertOne(ctx, toClassDoc(c)); err != nil {
		return wrapErr("failed to create class", err)
	}
	return nil
}

func (r *ClassRepository) FindByID(ctx context.Context, id uuid.UUID) (*class.Class, error) {
	var doc classDoc
	opts := options.FindOne().SetProjection(bson.M{"seatHolds": 0})
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}, opts).Decode(&doc); err != nil {
		return nil, wrapErr("failed to get class by id", err)
	}
	c, err := doc.toDomain()
	if err != nil {
		return nil, wrapErr("failed to decode class", err, infra.KindDBFailure)
	}
	return c, nil
}

func (r *ClassRepository) UpdateStatus(ctx context.Context, c *class.Class) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": c.ID().String()},
		bson.M{"$set": bson.M{"status": c.Status().String(), "updatedAt": c.UpdatedAt()}},
	)
	if err != nil {
		return wrapErr("failed to update class status", err)
	}
	if res.MatchedCount == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "class not found", nil)
	}
	return nil
}
