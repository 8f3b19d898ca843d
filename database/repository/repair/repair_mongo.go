package repairRepo

import (
	"context"
	"fmt"
	"time"

	"wrenchworks/database"
	"wrenchworks/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepairRepo implements RepairRepository using MongoDB.
type MongoRepairRepo struct {
	coll *mongo.Collection
}

// NewMongoRepairRepo creates a new instance of RepairRepository using MongoDB.
func NewMongoRepairRepo() RepairRepository {
	coll := database.DB().Collection("repairs")
	repo := &MongoRepairRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create repair indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoRepairRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "appointment_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "created_at", Value: -1}}, Options: options.Index().SetName("client_created_idx")},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a repair order by its unique ID.
func (r *MongoRepairRepo) GetByID(id string) (*models.RepairOrder, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var repair models.RepairOrder
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&repair); err != nil {
		return nil, fmt.Errorf("failed to fetch repair with id %s: %w", id, err)
	}
	return &repair, nil
}

// GetByAppointment retrieves the repair order linked to an appointment.
func (r *MongoRepairRepo) GetByAppointment(appointmentID string) (*models.RepairOrder, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var repair models.RepairOrder
	if err := r.coll.FindOne(ctx, bson.M{"appointment_id": appointmentID}).Decode(&repair); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch repair for appointment %s: %w", appointmentID, err)
	}
	return &repair, nil
}

// GetByClient retrieves all repair orders for a client, newest first.
func (r *MongoRepairRepo) GetByClient(clientID string) ([]models.RepairOrder, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"client_id": clientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve repairs: %w", err)
	}
	defer cursor.Close(ctx)

	var repairs []models.RepairOrder
	for cursor.Next(ctx) {
		var rep models.RepairOrder
		if err := cursor.Decode(&rep); err != nil {
			return nil, fmt.Errorf("failed to decode repair: %w", err)
		}
		repairs = append(repairs, rep)
	}
	return repairs, nil
}

// Create inserts a new repair order document.
func (r *MongoRepairRepo) Create(repair *models.RepairOrder) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	repair.CreatedAt = now
	repair.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, repair); err != nil {
		return fmt.Errorf("failed to create repair: %w", err)
	}
	return nil
}

// Update modifies an existing repair order document.
func (r *MongoRepairRepo) Update(repair *models.RepairOrder) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	repair.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": repair.ID}, bson.M{"$set": repair})
	if err != nil {
		return fmt.Errorf("failed to update repair with id %s: %w", repair.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("repair with id %s not found", repair.ID)
	}
	return nil
}
