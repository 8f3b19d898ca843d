package mechanicRepo

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

// MongoMechanicRepo implements MechanicRepository using MongoDB. Schedule
// blocks live embedded on the mechanic document, so deleting the mechanic
// removes its blocks with it (cascade by containment).
type MongoMechanicRepo struct {
	coll *mongo.Collection
}

// NewMongoMechanicRepo creates a new instance of MechanicRepository using MongoDB.
func NewMongoMechanicRepo() MechanicRepository {
	coll := database.DB().Collection("mechanics")
	repo := &MongoMechanicRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create mechanic indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoMechanicRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "active", Value: 1}}, Options: options.Index().SetName("active_idx")},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a mechanic by its unique ID.
func (r *MongoMechanicRepo) GetByID(id string) (*models.Mechanic, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var mech models.Mechanic
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&mech); err != nil {
		return nil, fmt.Errorf("failed to fetch mechanic with id %s: %w", id, err)
	}
	return &mech, nil
}

func (r *MongoMechanicRepo) find(filter bson.M) ([]models.Mechanic, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve mechanics: %w", err)
	}
	defer cursor.Close(ctx)

	var mechanics []models.Mechanic
	for cursor.Next(ctx) {
		var m models.Mechanic
		if err := cursor.Decode(&m); err != nil {
			return nil, fmt.Errorf("failed to decode mechanic: %w", err)
		}
		mechanics = append(mechanics, m)
	}
	return mechanics, nil
}

// GetAll retrieves all mechanics.
func (r *MongoMechanicRepo) GetAll() ([]models.Mechanic, error) {
	return r.find(bson.M{})
}

// GetAllActive retrieves all active mechanics with their schedules.
func (r *MongoMechanicRepo) GetAllActive() ([]models.Mechanic, error) {
	return r.find(bson.M{"active": true})
}

// GetAllBlocks retrieves every schedule block across all active mechanics.
func (r *MongoMechanicRepo) GetAllBlocks() ([]models.ScheduleBlock, error) {
	mechanics, err := r.GetAllActive()
	if err != nil {
		return nil, err
	}
	var blocks []models.ScheduleBlock
	for _, m := range mechanics {
		blocks = append(blocks, m.Blocks...)
	}
	return blocks, nil
}

// CountActive returns the active mechanic headcount.
func (r *MongoMechanicRepo) CountActive() (int, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"active": true})
	if err != nil {
		return 0, fmt.Errorf("failed to count mechanics: %w", err)
	}
	return int(count), nil
}

// Create inserts a new mechanic document.
func (r *MongoMechanicRepo) Create(mechanic *models.Mechanic) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	mechanic.CreatedAt = now
	mechanic.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, mechanic); err != nil {
		return fmt.Errorf("failed to create mechanic: %w", err)
	}
	return nil
}

// Update modifies an existing mechanic document.
func (r *MongoMechanicRepo) Update(mechanic *models.Mechanic) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	mechanic.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": mechanic.ID}, bson.M{"$set": mechanic})
	if err != nil {
		return fmt.Errorf("failed to update mechanic with id %s: %w", mechanic.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("mechanic with id %s not found", mechanic.ID)
	}
	return nil
}

// Delete removes a mechanic document; the embedded schedule blocks go with it.
func (r *MongoMechanicRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete mechanic with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("mechanic with id %s not found", id)
	}
	return nil
}

// ReplaceSchedule swaps the mechanic's entire block set in a single document
// write. Because the blocks are embedded, the delete-all-then-insert-all
// semantics collapse into one $set: there is no window where a partial
// schedule is visible.
func (r *MongoMechanicRepo) ReplaceSchedule(mechanicID string, blocks []models.ScheduleBlock) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	for i := range blocks {
		blocks[i].MechanicID = mechanicID
	}

	update := bson.M{
		"$set": bson.M{"blocks": blocks, "updated_at": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": mechanicID}, update)
	if err != nil {
		return fmt.Errorf("failed to replace schedule for mechanic %s: %w", mechanicID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("mechanic with id %s not found", mechanicID)
	}
	return nil
}
