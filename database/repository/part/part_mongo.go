package partRepo

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

// MongoPartRepo implements PartRepository using MongoDB.
type MongoPartRepo struct {
	coll *mongo.Collection
}

// NewMongoPartRepo creates a new instance of PartRepository using MongoDB.
func NewMongoPartRepo() PartRepository {
	coll := database.DB().Collection("parts")
	repo := &MongoPartRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create part indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPartRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "sku", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a part by its unique ID.
func (r *MongoPartRepo) GetByID(id string) (*models.Part, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var part models.Part
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&part); err != nil {
		return nil, fmt.Errorf("failed to fetch part with id %s: %w", id, err)
	}
	return &part, nil
}

func (r *MongoPartRepo) find(filter interface{}) ([]models.Part, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve parts: %w", err)
	}
	defer cursor.Close(ctx)

	var parts []models.Part
	for cursor.Next(ctx) {
		var p models.Part
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode part: %w", err)
		}
		parts = append(parts, p)
	}
	return parts, nil
}

// GetAll retrieves the full parts catalogue.
func (r *MongoPartRepo) GetAll() ([]models.Part, error) {
	return r.find(bson.M{})
}

// GetLowStock retrieves parts at or below their reorder level.
func (r *MongoPartRepo) GetLowStock() ([]models.Part, error) {
	return r.find(bson.M{"$expr": bson.M{"$lte": bson.A{"$stock", "$reorder_level"}}})
}

// Create inserts a new part document.
func (r *MongoPartRepo) Create(part *models.Part) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	part.CreatedAt = now
	part.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, part); err != nil {
		return fmt.Errorf("failed to create part: %w", err)
	}
	return nil
}

// Update modifies an existing part document.
func (r *MongoPartRepo) Update(part *models.Part) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	part.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": part.ID}, bson.M{"$set": part})
	if err != nil {
		return fmt.Errorf("failed to update part with id %s: %w", part.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("part with id %s not found", part.ID)
	}
	return nil
}

// Delete removes a part document by its ID.
func (r *MongoPartRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete part with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("part with id %s not found", id)
	}
	return nil
}

// AdjustStock changes a part's stock by delta in a single conditional update:
// for a negative delta the filter requires enough stock, so the write either
// applies fully or not at all.
func (r *MongoPartRepo) AdjustStock(id string, delta int) (*models.Part, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	if delta < 0 {
		filter["stock"] = bson.M{"$gte": -delta}
	}
	update := bson.M{
		"$inc": bson.M{"stock": delta},
		"$set": bson.M{"updated_at": time.Now()},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var part models.Part
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&part); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("part %s: %w", id, ErrInsufficientStock)
		}
		return nil, fmt.Errorf("failed to adjust stock for part %s: %w", id, err)
	}
	return &part, nil
}
