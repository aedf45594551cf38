package mongostore

import (
	"context"

	"course-enrollment/internal/domain/selection"
	"course-enrollment/internal/infra"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type SelectionRepository struct {
	coll *mongo.Collection
}

func NewSelectionRepository(db *mongo.Database) *SelectionRepository {
	return &SelectionRepository{coll: db.Collection(selectionsCollection)}
}

func (r *SelectionRepository) Create(ctx context.Context, s *selection.Selection) error {
	if _, err := r.coll.InsertOne(ctx, toSelectionDoc(s)); err != nil {
		return wrapErr("failed to create selection", err)
	}
	return nil
}

func (r *SelectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*selection.Selection, error) {
	var doc selectionDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		return nil, wrapErr("failed to get selection by id", err)
	}
	s, err := doc.toDomain()
	if err != nil {
		return nil, wrapErr("failed to decode selection", err, infra.KindDBFailure)
	}
	return s, nil
}

func (r *SelectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return wrapErr("failed to delete selection", err)
	}
	if res.DeletedCount == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "selection not found", nil)
	}
	return nil
}
