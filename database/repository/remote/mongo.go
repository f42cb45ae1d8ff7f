package remoteRepo

import (
	"context"
	"fmt"

	"pathlab/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRepo struct {
	client       *mongo.Client
	tests        *mongo.Collection
	appointments *mongo.Collection
}

// NewMongoRepo stores both tables as collections of the given database.
func NewMongoRepo(client *mongo.Client, database string) Repository {
	db := client.Database(database)
	return &mongoRepo{
		client:       client,
		tests:        db.Collection("tests"),
		appointments: db.Collection("appointments"),
	}
}

// EnsureIndexes creates the unique id indexes and the created_at sort index.
func EnsureIndexes(ctx context.Context, repo Repository) error {
	m, ok := repo.(*mongoRepo)
	if !ok {
		return nil
	}
	unique := mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)}
	if _, err := m.tests.Indexes().CreateOne(ctx, unique); err != nil {
		return fmt.Errorf("tests index: %w", err)
	}
	if _, err := m.appointments.Indexes().CreateMany(ctx, []mongo.IndexModel{
		unique,
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}); err != nil {
		return fmt.Errorf("appointments index: %w", err)
	}
	return nil
}

func (r *mongoRepo) ListTests(ctx context.Context) ([]models.LabTest, error) {
	cursor, err := r.tests.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find tests: %w", err)
	}
	defer cursor.Close(ctx)

	var tests []models.LabTest
	if err := cursor.All(ctx, &tests); err != nil {
		return nil, fmt.Errorf("decode tests: %w", err)
	}
	return tests, nil
}

func (r *mongoRepo) InsertTests(ctx context.Context, tests []models.LabTest) error {
	docs := make([]interface{}, len(tests))
	for i, t := range tests {
		docs[i] = t
	}
	if _, err := r.tests.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("seed tests: %w", err)
	}
	return nil
}

func (r *mongoRepo) InsertTest(ctx context.Context, t models.LabTest) error {
	if _, err := r.tests.InsertOne(ctx, t); err != nil {
		return fmt.Errorf("insert test %s: %w", t.ID, err)
	}
	return nil
}

func (r *mongoRepo) UpdateTest(ctx context.Context, t models.LabTest) error {
	res, err := r.tests.ReplaceOne(ctx, bson.M{"id": t.ID}, t)
	if err != nil {
		return fmt.Errorf("update test %s: %w", t.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoRepo) DeleteTest(ctx context.Context, id string) error {
	res, err := r.tests.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete test %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoRepo) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.appointments.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []appointmentRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode appointments: %w", err)
	}
	out := make([]models.Appointment, len(rows))
	for i, row := range rows {
		out[i] = row.toModel()
	}
	return out, nil
}

func (r *mongoRepo) InsertAppointment(ctx context.Context, a models.Appointment) error {
	if _, err := r.appointments.InsertOne(ctx, toAppointmentRow(a)); err != nil {
		return fmt.Errorf("insert appointment %s: %w", a.ID, err)
	}
	return nil
}

func (r *mongoRepo) setAppointmentField(ctx context.Context, id, field string, value interface{}) error {
	res, err := r.appointments.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{field: value}})
	if err != nil {
		return fmt.Errorf("update appointment %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoRepo) UpdateAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) error {
	return r.setAppointmentField(ctx, id, "status", string(status))
}

func (r *mongoRepo) UpdateReportURL(ctx context.Context, id, url string) error {
	return r.setAppointmentField(ctx, id, "report_url", url)
}

func (r *mongoRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}

func (r *mongoRepo) Close() {
	_ = r.client.Disconnect(context.Background())
}
