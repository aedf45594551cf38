package mongostore

import (
	"context"
	"time"

	"course-enrollment/internal/domain/payment"
	"course-enrollment/internal/domain/settlement"
	"course-enrollment/internal/infra"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SettlementRepository keys records by transaction id. The "active" flag
// mirrors status != released and backs the partial unique index on
// selectionId.
type SettlementRepository struct {
	coll *mongo.Collection
}

func NewSettlementRepository(db *mongo.Database) *SettlementRepository {
	return &SettlementRepository{coll: db.Collection(settlementsCollection)}
}

func (r *SettlementRepository) Claim(ctx context.Context, s *settlement.Settlement) error {
	if _, err := r.coll.InsertOne(ctx, toSettlementDoc(s)); err != nil {
		return wrapErr("failed to claim settlement", err)
	}
	return nil
}

func (r *SettlementRepository) FindByTransactionID(ctx context.Context, txn payment.TransactionID) (*settlement.Settlement, error) {
	var doc settlementDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": txn.String()}).Decode(&doc); err != nil {
		return nil, wrapErr("failed to get settlement", err)
	}
	s, err := doc.toDomain()
	if err != nil {
		return nil, wrapErr("failed to decode settlement", err, infra.KindDBFailure)
	}
	return s, nil
}

func (r *SettlementRepository) Reclaim(ctx context.Context, s *settlement.Settlement, now time.Time) (bool, error) {
	doc := toSettlementDoc(s)
	filter := bson.M{
		"_id":      doc.TransactionID,
		"attempts": doc.Attempts - 1,
		"$or": bson.A{
			bson.M{"status": string(settlement.StatusReleased)},
			bson.M{"status": string(settlement.StatusProcessing), "leaseExpiresAt": bson.M{"$lte": now}},
		},
	}
	update := bson.M{"$set": bson.M{
		"selectionId":     doc.SelectionID,
		"studentEmail":    doc.StudentEmail,
		"classId":         doc.ClassID,
		"className":       doc.ClassName,
		"classImage":      doc.ClassImage,
		"instructorName":  doc.InstructorName,
		"instructorEmail": doc.InstructorEmail,
		"priceCents":      doc.PriceCents,
		"amountCents":     doc.AmountCents,
		"status":          string(settlement.StatusProcessing),
		"active":          true,
		"stage":           doc.Stage,
		"attempts":        doc.Attempts,
		"leaseExpiresAt":  doc.LeaseExpiresAt,
		"updatedAt":       now,
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, wrapErr("failed to reclaim settlement", err)
	}
	return res.MatchedCount == 1, nil
}

func (r *SettlementRepository) SaveProgress(ctx context.Context, s *settlement.Settlement) error {
	doc := toSettlementDoc(s)
	return r.updateProcessing(ctx, s, "failed to save settlement progress", bson.M{
		"stage":          doc.Stage,
		"paymentId":      doc.PaymentID,
		"enrollmentId":   doc.EnrollmentID,
		"seatsRemaining": doc.SeatsRemaining,
		"updatedAt":      doc.UpdatedAt,
	})
}

func (r *SettlementRepository) Complete(ctx context.Context, s *settlement.Settlement) error {
	doc := toSettlementDoc(s)
	return r.updateProcessing(ctx, s, "failed to complete settlement", bson.M{
		"status":       string(settlement.StatusCompleted),
		"stage":        doc.Stage,
		"paymentId":    doc.PaymentID,
		"enrollmentId": doc.EnrollmentID,
		"updatedAt":    doc.UpdatedAt,
	})
}

func (r *SettlementRepository) Release(ctx context.Context, s *settlement.Settlement, now time.Time) (bool, error) {
	res, err := r.coll.UpdateOne(ctx, ownedFilter(s), bson.M{"$set": bson.M{
		"status":    string(settlement.StatusReleased),
		"active":    false,
		"stage":     int(settlement.StageNone),
		"updatedAt": now,
	}})
	if err != nil {
		return false, wrapErr("failed to release settlement", err)
	}
	return res.MatchedCount == 1, nil
}

func (r *SettlementRepository) ExpireLease(ctx context.Context, s *settlement.Settlement, now time.Time) error {
	_, err := r.coll.UpdateOne(ctx, ownedFilter(s), bson.M{"$set": bson.M{
		"leaseExpiresAt": now,
		"updatedAt":      now,
	}})
	if err != nil {
		return wrapErr("failed to expire settlement lease", err)
	}
	return nil
}

func (r *SettlementRepository) ListStale(ctx context.Context, now time.Time, limit int) ([]*settlement.Settlement, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "leaseExpiresAt", Value: 1}}).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.M{
		"status":         string(settlement.StatusProcessing),
		"leaseExpiresAt": bson.M{"$lte": now},
	}, opts)
	if err != nil {
		return nil, wrapErr("failed to list stale settlements", err)
	}
	var docs []settlementDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, wrapErr("failed to read stale settlements", err)
	}

	out := make([]*settlement.Settlement, 0, len(docs))
	for _, d := range docs {
		s, err := d.toDomain()
		if err != nil {
			return nil, wrapErr("failed to decode settlement", err, infra.KindDBFailure)
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *SettlementRepository) updateProcessing(ctx context.Context, s *settlement.Settlement, msg string, set bson.M) error {
	res, err := r.coll.UpdateOne(ctx, ownedFilter(s), bson.M{"$set": set})
	if err != nil {
		return wrapErr(msg, err)
	}
	if res.MatchedCount == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "processing settlement not found", nil)
	}
	return nil
}

// ownedFilter matches the record only while the attempt in s still owns it.
func ownedFilter(s *settlement.Settlement) bson.M {
	return bson.M{
		"_id":      s.TransactionID.String(),
		"status":   string(settlement.StatusProcessing),
		"attempts": s.Attempts,
	}
}
