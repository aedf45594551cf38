package mongostore

import (
	"context"

	"course-enrollment/internal/domain/payment"
	"course-enrollment/internal/infra"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type PaymentRepository struct {
	coll *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{coll: db.Collection(paymentsCollection)}
}

func (r *PaymentRepository) Append(ctx context.Context, p *payment.Payment) error {
	if _, err := r.coll.InsertOne(ctx, toPaymentDoc(p)); err != nil {
		return wrapErr("failed to append payment", err)
	}
	return nil
}

func (r *PaymentRepository) FindByTransactionID(ctx context.Context, txn payment.TransactionID) (*payment.Payment, error) {
	var doc paymentDoc
	if err := r.coll.FindOne(ctx, bson.M{"transactionId": txn.String()}).Decode(&doc); err != nil {
		return nil, wrapErr("failed to get payment by transaction id", err)
	}
	p, err := doc.toDomain()
	if err != nil {
		return nil, wrapErr("failed to decode payment", err, infra.KindDBFailure)
	}
	return p, nil
}
