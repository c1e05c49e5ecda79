package repository

import (
	"context"
	"fmt"

	"attendance.service/internal/core/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Collection names used by the existing deployments.
const (
	AttendanceCollection = "attendencedatas"
	EmployeeCollection   = "employees"
	OfficeCollection     = "offices"
)

type attendanceDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Employee  string             `bson:"employee"`
	Type      string             `bson:"type"`
	Date      string             `bson:"date"`
	Time      string             `bson:"time"`
	Latitude  coordinate         `bson:"latitude"`
	Longitude coordinate         `bson:"longitude"`
	Location  string             `bson:"location"`
	SelfieURL string             `bson:"selfieUrl"`
	Office    string             `bson:"office"`
}

// MongoAttendanceRepository stores attendance records as MongoDB documents.
type MongoAttendanceRepository struct {
	coll *mongo.Collection
}

func NewMongoAttendanceRepository(db *mongo.Database) *MongoAttendanceRepository {
	return &MongoAttendanceRepository{coll: db.Collection(AttendanceCollection)}
}

// Insert stores one record and sets its generated id.
func (r *MongoAttendanceRepository) Insert(ctx context.Context, record *model.AttendanceRecord) error {
	ctx, span := startMongoSpan(ctx, AttendanceCollection, "insert")
	defer span.End()
	span.SetAttributes(attribute.String("app.employee", record.Employee))

	res, err := r.coll.InsertOne(ctx, toAttendanceDocument(record))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return fmt.Errorf("failed to insert attendance record: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		record.ID = oid.Hex()
	}
	return nil
}

// Find returns the documents matching every non-empty filter field in natural order.
func (r *MongoAttendanceRepository) Find(ctx context.Context, filter model.AttendanceFilter) ([]model.AttendanceRecord, error) {
	ctx, span := startMongoSpan(ctx, AttendanceCollection, "find")
	defer span.End()

	cur, err := r.coll.Find(ctx, attendanceFilterDocument(filter))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "find failed")
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}

	var docs []attendanceDocument
	if err := cur.All(ctx, &docs); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode failed")
		return nil, fmt.Errorf("failed to read attendance records: %w", err)
	}

	records := make([]model.AttendanceRecord, 0, len(docs))
	for _, d := range docs {
		records = append(records, fromAttendanceDocument(d))
	}
	return records, nil
}

// attendanceFilterDocument builds an equality filter; an empty filter matches everything.
func attendanceFilterDocument(filter model.AttendanceFilter) bson.D {
	doc := bson.D{}
	if filter.Employee != "" {
		doc = append(doc, bson.E{Key: "employee", Value: filter.Employee})
	}
	if filter.Date != "" {
		doc = append(doc, bson.E{Key: "date", Value: filter.Date})
	}
	return doc
}

func toAttendanceDocument(r *model.AttendanceRecord) attendanceDocument {
	return attendanceDocument{
		Employee:  r.Employee,
		Type:      r.Type,
		Date:      r.Date,
		Time:      r.Time,
		Latitude:  coordinate{r.Latitude},
		Longitude: coordinate{r.Longitude},
		Location:  r.Location,
		SelfieURL: r.SelfieURL,
		Office:    r.Office,
	}
}

func fromAttendanceDocument(d attendanceDocument) model.AttendanceRecord {
	return model.AttendanceRecord{
		ID:        d.ID.Hex(),
		Employee:  d.Employee,
		Type:      d.Type,
		Date:      d.Date,
		Time:      d.Time,
		Latitude:  d.Latitude.value,
		Longitude: d.Longitude.value,
		Location:  d.Location,
		Office:    d.Office,
		SelfieURL: d.SelfieURL,
	}
}

func startMongoSpan(ctx context.Context, collection, operation string) (context.Context, trace.Span) {
	tracer := otel.Tracer("mongo-store")
	return tracer.Start(ctx, collection+"."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "mongodb"),
			attribute.String("db.mongodb.collection", collection),
			attribute.String("db.operation", operation),
		),
	)
}
