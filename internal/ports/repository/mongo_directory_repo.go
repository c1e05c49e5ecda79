package repository

import (
	"context"
	"fmt"

	"attendance.service/internal/core/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type employeeDocument struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

// Older deployments stored the office name under "officename".
type officeDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name,omitempty"`
	OfficeName string             `bson:"officename,omitempty"`
	Latitude   coordinate         `bson:"latitude,omitempty"`
	Longitude  coordinate         `bson:"longitude,omitempty"`
}

// MongoDirectoryRepository reads the employees and offices collections.
type MongoDirectoryRepository struct {
	employees *mongo.Collection
	offices   *mongo.Collection
}

func NewMongoDirectoryRepository(db *mongo.Database) *MongoDirectoryRepository {
	return &MongoDirectoryRepository{
		employees: db.Collection(EmployeeCollection),
		offices:   db.Collection(OfficeCollection),
	}
}

func (r *MongoDirectoryRepository) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	ctx, span := startMongoSpan(ctx, EmployeeCollection, "find")
	defer span.End()

	cur, err := r.employees.Find(ctx, bson.D{}, options.Find().SetProjection(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}

	var docs []employeeDocument
	if err := cur.All(ctx, &docs); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}

	employees := make([]model.Employee, 0, len(docs))
	for _, d := range docs {
		employees = append(employees, model.Employee{ID: d.ID.Hex(), Name: d.Name})
	}
	return employees, nil
}

func (r *MongoDirectoryRepository) ListOffices(ctx context.Context) ([]model.Office, error) {
	ctx, span := startMongoSpan(ctx, OfficeCollection, "find")
	defer span.End()

	cur, err := r.offices.Find(ctx, bson.D{})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to query offices: %w", err)
	}

	var docs []officeDocument
	if err := cur.All(ctx, &docs); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to read offices: %w", err)
	}

	offices := make([]model.Office, 0, len(docs))
	for _, d := range docs {
		offices = append(offices, fromOfficeDocument(d))
	}
	return offices, nil
}

func fromOfficeDocument(d officeDocument) model.Office {
	name := d.Name
	if name == "" {
		name = d.OfficeName
	}
	return model.Office{
		ID:        d.ID.Hex(),
		Name:      name,
		Latitude:  d.Latitude.value,
		Longitude: d.Longitude.value,
	}
}
