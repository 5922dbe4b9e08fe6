package appointmentRepo

import (
	"context"
	"fmt"

	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// HeldTimes projects only (slotDate, slotTime) of the slot-holding
// appointments in range, which is the whole booked-slot index for one
// provider. The index is always rebuilt from the appointment set; nothing
// else stores it.
func (r *MongoAppointmentRepo) HeldTimes(ctx context.Context, providerID, fromDate, toDate string) (models.BookedSlotIndex, error) {
	filter := bson.M{
		"providerId": providerID,
		"slotHeld":   true,
		"slotDate":   bson.M{"$gte": fromDate, "$lte": toDate},
	}
	opts := options.Find().SetProjection(bson.M{"slotDate": 1, "slotTime": 1})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query held slots for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	index := models.BookedSlotIndex{}
	for cursor.Next(ctx) {
		var row struct {
			SlotDate string `bson:"slotDate"`
			SlotTime string `bson:"slotTime"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode held slot: %w", err)
		}
		index[row.SlotDate] = append(index[row.SlotDate], row.SlotTime)
	}
	return index, cursor.Err()
}

func (r *MongoAppointmentRepo) ByProvider(ctx context.Context, providerID string) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{"providerId": providerID})
}

func (r *MongoAppointmentRepo) ByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{"patientId": patientID})
}

func (r *MongoAppointmentRepo) All(ctx context.Context) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{})
}

// find returns appointments most recent first; "latest appointments" views
// are just this ordering.
func (r *MongoAppointmentRepo) find(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	for cursor.Next(ctx) {
		var a models.Appointment
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode appointment: %w", err)
		}
		appts = append(appts, a)
	}
	return appts, cursor.Err()
}
