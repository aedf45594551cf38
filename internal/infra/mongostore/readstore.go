package mongostore

import (
	"context"
	"strings"

	"course-enrollment/internal/infra"
	"course-enrollment/internal/usecase/queries"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EnrollmentReadStore struct {
	coll *mongo.Collection
}

func NewEnrollmentReadStore(db *mongo.Database) *EnrollmentReadStore {
	return &EnrollmentReadStore{coll: db.Collection(enrollmentsCollection)}
}

type classRollup struct {
	ClassName       string `bson:"_id"`
	Total           int64  `bson:"total"`
	ClassImage      string `bson:"classImage"`
	InstructorName  string `bson:"instructorName"`
	InstructorEmail string `bson:"instructorEmail"`
	PriceCents      int64  `bson:"priceCents"`
	AvailableSeat   int    `bson:"availableSeat"`
}

// EnrollmentsByClass groups by class name; the descriptive fields are those
// of the earliest enrollment in each group.
func (r *EnrollmentReadStore) EnrollmentsByClass(ctx context.Context) ([]queries.ClassEnrollmentView, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$className"},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "classImage", Value: bson.D{{Key: "$first", Value: "$classImage"}}},
			{Key: "instructorName", Value: bson.D{{Key: "$first", Value: "$instructorName"}}},
			{Key: "instructorEmail", Value: bson.D{{Key: "$first", Value: "$instructorEmail"}}},
			{Key: "priceCents", Value: bson.D{{Key: "$first", Value: "$priceCents"}}},
			{Key: "availableSeat", Value: bson.D{{Key: "$first", Value: "$availableSeat"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "total", Value: -1}, {Key: "_id", Value: 1}}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, wrapErr("failed to aggregate enrollments by class", err)
	}
	var rows []classRollup
	if err := cur.All(ctx, &rows); err != nil {
		return nil, wrapErr("failed to read enrollment rollup", err)
	}

	out := make([]queries.ClassEnrollmentView, 0, len(rows))
	for _, row := range rows {
		out = append(out, queries.ClassEnrollmentView{
			ClassName:       row.ClassName,
			TotalEnrollment: row.Total,
			ClassImage:      row.ClassImage,
			InstructorName:  row.InstructorName,
			InstructorEmail: row.InstructorEmail,
			PriceCents:      row.PriceCents,
			AvailableSeat:   row.AvailableSeat,
		})
	}
	return out, nil
}

func (r *EnrollmentReadStore) CountByInstructor(ctx context.Context, instructorName string) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"instructorName": instructorName})
	if err != nil {
		return 0, wrapErr("failed to count enrollments by instructor", err)
	}
	return n, nil
}

func (r *EnrollmentReadStore) ListByStudent(ctx context.Context, studentEmail string) ([]queries.EnrollmentView, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"studentEmail": studentEmail}, opts)
	if err != nil {
		return nil, wrapErr("failed to list enrollments by student", err)
	}
	var docs []enrollmentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, wrapErr("failed to read enrollments", err)
	}

	out := make([]queries.EnrollmentView, 0, len(docs))
	for _, d := range docs {
		e, err := d.toDomain()
		if err != nil {
			return nil, wrapErr("failed to decode enrollment", err, infra.KindDBFailure)
		}
		out = append(out, queries.EnrollmentView{
			ID:              e.ID,
			TransactionID:   e.TransactionID.String(),
			StudentEmail:    e.StudentEmail,
			ClassID:         e.ClassID,
			ClassName:       e.ClassName,
			ClassImage:      e.ClassImage,
			InstructorName:  e.InstructorName,
			InstructorEmail: e.InstructorEmail,
			PriceCents:      e.PriceCents,
			AvailableSeat:   e.AvailableSeat,
			CreatedAt:       e.CreatedAt,
		})
	}
	return out, nil
}

type ClassReadStore struct {
	coll *mongo.Collection
}

func NewClassReadStore(db *mongo.Database) *ClassReadStore {
	return &ClassReadStore{coll: db.Collection(classesCollection)}
}

func (r *ClassReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ClassView, error) {
	var doc classDoc
	opts := options.FindOne().SetProjection(bson.M{"seatHolds": 0})
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}, opts).Decode(&doc); err != nil {
		return nil, wrapErr("failed to get class view by id", err)
	}
	v, err := classView(doc)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ClassReadStore) List(ctx context.Context, filter queries.ClassFilter) ([]queries.ClassView, error) {
	q := bson.M{}
	if filter.Status != "" {
		q["status"] = filter.Status
	}
	if filter.InstructorEmail != "" {
		q["instructorEmail"] = strings.ToLower(filter.InstructorEmail)
	}
	opts := options.Find().
		SetProjection(bson.M{"seatHolds": 0}).
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(filter.Limit))
	cur, err := r.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, wrapErr("failed to list classes", err)
	}
	var docs []classDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, wrapErr("failed to read classes", err)
	}

	out := make([]queries.ClassView, 0, len(docs))
	for _, d := range docs {
		v, err := classView(d)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func classView(d classDoc) (queries.ClassView, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return queries.ClassView{}, wrapErr("failed to decode class", err, infra.KindDBFailure)
	}
	return queries.ClassView{
		ID:              id,
		Name:            d.Name,
		ImageURL:        d.ImageURL,
		InstructorName:  d.InstructorName,
		InstructorEmail: d.InstructorEmail,
		PriceCents:      d.PriceCents,
		AvailableSeat:   d.AvailableSeat,
		Status:          d.Status,
		CreatedAt:       d.CreatedAt.UTC(),
		UpdatedAt:       d.UpdatedAt.UTC(),
	}, nil
}

type SelectionReadStore struct {
	coll *mongo.Collection
}

func NewSelectionReadStore(db *mongo.Database) *SelectionReadStore {
	return &SelectionReadStore{coll: db.Collection(selectionsCollection)}
}

func (r *SelectionReadStore) ListByStudent(ctx context.Context, studentEmail string) ([]queries.SelectionView, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"studentEmail": studentEmail}, opts)
	if err != nil {
		return nil, wrapErr("failed to list selections", err)
	}
	var docs []selectionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, wrapErr("failed to read selections", err)
	}

	out := make([]queries.SelectionView, 0, len(docs))
	for _, d := range docs {
		s, err := d.toDomain()
		if err != nil {
			return nil, wrapErr("failed to decode selection", err, infra.KindDBFailure)
		}
		out = append(out, queries.SelectionView{
			ID:           s.ID,
			StudentEmail: s.StudentEmail,
			ClassID:      s.ClassID,
			ClassName:    s.ClassName,
			PriceCents:   s.PriceCents,
			CreatedAt:    s.CreatedAt,
		})
	}
	return out, nil
}
