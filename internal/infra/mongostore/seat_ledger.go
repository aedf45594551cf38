package mongostore

import (
	"context"
	"errors"

	"course-enrollment/internal/domain/class"
	"course-enrollment/internal/domain/payment"
	"course-enrollment/internal/infra"
	"course-enrollment/internal/usecase/shared"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SeatLedger keeps the hold keys on the class document itself so the
// decrement and the hold are one single-document update.
type SeatLedger struct {
	coll *mongo.Collection
}

func NewSeatLedger(db *mongo.Database) *SeatLedger {
	return &SeatLedger{coll: db.Collection(classesCollection)}
}

type seatCount struct {
	AvailableSeat int      `bson:"availableSeat"`
	SeatHolds     []string `bson:"seatHolds"`
}

func (l *SeatLedger) ReserveSeat(ctx context.Context, classID uuid.UUID, holdKey payment.TransactionID) (shared.SeatReservation, error) {
	id, key := classID.String(), holdKey.String()

	filter := bson.M{
		"_id":           id,
		"availableSeat": bson.M{"$gt": 0},
		"seatHolds":     bson.M{"$ne": key},
	}
	update := bson.M{
		"$inc":         bson.M{"availableSeat": -1},
		"$addToSet":    bson.M{"seatHolds": key},
		"$currentDate": bson.M{"updatedAt": true},
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"availableSeat": 1})

	var out seatCount
	err := l.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out)
	if err == nil {
		return shared.SeatReservation{Remaining: out.AvailableSeat}, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return shared.SeatReservation{}, wrapErr("failed to decrement seat", err)
	}

	// Nothing matched: the class is missing, full, or already holds this key.
	probe := options.FindOne().SetProjection(bson.M{
		"availableSeat": 1,
		"seatHolds":     bson.M{"$elemMatch": bson.M{"$eq": key}},
	})
	if err := l.coll.FindOne(ctx, bson.M{"_id": id}, probe).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return shared.SeatReservation{}, infra.NewRepoErr(infra.KindNotFound, "class not found", err)
		}
		return shared.SeatReservation{}, wrapErr("failed to read seat count", err)
	}
	if len(out.SeatHolds) > 0 {
		return shared.SeatReservation{Remaining: out.AvailableSeat, AlreadyHeld: true}, nil
	}
	return shared.SeatReservation{}, class.ErrSeatUnavailable
}

func (l *SeatLedger) ReleaseSeat(ctx context.Context, classID uuid.UUID, holdKey payment.TransactionID) (bool, error) {
	key := holdKey.String()
	res, err := l.coll.UpdateOne(ctx,
		bson.M{"_id": classID.String(), "seatHolds": key},
		bson.M{
			"$inc":         bson.M{"availableSeat": 1},
			"$pull":        bson.M{"seatHolds": key},
			"$currentDate": bson.M{"updatedAt": true},
		},
	)
	if err != nil {
		return false, wrapErr("failed to release seat", err)
	}
	return res.ModifiedCount == 1, nil
}
