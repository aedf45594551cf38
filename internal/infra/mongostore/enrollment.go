package mongostore

import (
	"context"

	"course-enrollment/internal/domain/enrollment"
	"course-enrollment/internal/domain/payment"
	"course-enrollment/internal/infra"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EnrollmentRepository struct {
	coll *mongo.Collection
}

func NewEnrollmentRepository(db *mongo.Database) *EnrollmentRepository {
	return &EnrollmentRepository{coll: db.Collection(enrollmentsCollection)}
}

func (r *EnrollmentRepository) Append(ctx context.Context, e *enrollment.Enrollment) error {
	if _, err := r.coll.InsertOne(ctx, toEnrollmentDoc(e)); err != nil {
		return wrapErr("failed to append enrollment", err)
	}
	return nil
}

func (r *EnrollmentRepository) FindByTransactionID(ctx context.Context, txn payment.TransactionID) (*enrollment.Enrollment, error) {
	var doc enrollmentDoc
	if err := r.coll.FindOne(ctx, bson.M{"transactionId": txn.String()}).Decode(&doc); err != nil {
		return nil, wrapErr("failed to get enrollment by transaction id", err)
	}
	e, err := doc.toDomain()
	if err != nil {
		return nil, wrapErr("failed to decode enrollment", err, infra.KindDBFailure)
	}
	return e, nil
}

func (r *EnrollmentRepository) ExistsForStudent(ctx context.Context, studentEmail string, classID uuid.UUID) (bool, error) {
	n, err := r.coll.CountDocuments(ctx,
		bson.M{"studentEmail": studentEmail, "classId": classID.String()},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, wrapErr("failed to check enrollment", err)
	}
	return n > 0, nil
}
