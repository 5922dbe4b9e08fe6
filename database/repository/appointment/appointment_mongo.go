package appointmentRepo

import (
	"context"
	"fmt"

	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo creates the repository on the "appointments"
// collection.
func NewMongoAppointmentRepo() *MongoAppointmentRepo {
	coll := database.MongoClient.Database(database.Name).Collection("appointments")
	return &MongoAppointmentRepo{coll: coll}
}

// Insert relies on the unique partial slot index (see EnsureIndexes): the
// insert and the uniqueness check are a single atomic unit inside the
// server, so concurrent reservations for the same triple cannot both land.
func (r *MongoAppointmentRepo) Insert(ctx context.Context, appt *models.Appointment) error {
	_, err := r.coll.InsertOne(ctx, appt)
	if mongo.IsDuplicateKeyError(err) {
		return ErrSlotTaken
	}
	if err != nil {
		return fmt.Errorf("failed to insert appointment: %w", err)
	}
	return nil
}

func (r *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment %s: %w", id, err)
	}
	return &appt, nil
}

// MarkCancelled filters on status=booked so a concurrent complete or a
// repeated cancel cannot both apply; the loser sees ErrNotBooked.
func (r *MongoAppointmentRepo) MarkCancelled(ctx context.Context, id, reason string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "status": models.StatusBooked},
		bson.M{"$set": bson.M{
			"status":             models.StatusCancelled,
			"cancellationReason": reason,
			"slotHeld":           false,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to cancel appointment %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotBooked
	}
	return nil
}

func (r *MongoAppointmentRepo) MarkCompleted(ctx context.Context, id string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "status": models.StatusBooked},
		bson.M{"$set": bson.M{"status": models.StatusCompleted}},
	)
	if err != nil {
		return fmt.Errorf("failed to complete appointment %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotBooked
	}
	return nil
}

func (r *MongoAppointmentRepo) MarkPaid(ctx context.Context, id string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"paid": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark appointment %s paid: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
