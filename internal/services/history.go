package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/paddyguard/paddyguard-backend/internal/models"
)

const (
	predictionsCollection = "predictions"
	historyPageSize       = 50
)

// HistoryService persists prediction results per farmer in MongoDB.
type HistoryService struct {
	coll *mongo.Collection
}

func NewHistoryService(db *mongo.Database) *HistoryService {
	return &HistoryService{coll: db.Collection(predictionsCollection)}
}

// EnsureIndexes creates the farmer_id + created_at index used by
// ListByFarmer.
func (s *HistoryService) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "farmer_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
	})
	return err
}

// Save records one analyzed image for a farmer.
func (s *HistoryService) Save(ctx context.Context, farmerID, imageURL string, result models.PredictionResult) error {
	record := models.PredictionRecord{
		FarmerID:  farmerID,
		ImageURL:  imageURL,
		Result:    result,
		CreatedAt: time.Now(),
	}
	_, err := s.coll.InsertOne(ctx, record)
	return err
}

// ListByFarmer returns a farmer's recent predictions, newest first.
func (s *HistoryService) ListByFarmer(ctx context.Context, farmerID string) ([]models.PredictionRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(historyPageSize)

	cursor, err := s.coll.Find(ctx, bson.M{"farmer_id": farmerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []models.PredictionRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
