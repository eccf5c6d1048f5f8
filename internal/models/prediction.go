package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PredictionResult is the inference service's response, passed through
// opaquely; the backend does not interpret these fields beyond display.
// recommended_action is a delimiter-separated list of action items.
type PredictionResult struct {
	PestDetected      string `bson:"pest_detected" json:"pest_detected"`
	Confidence        string `bson:"confidence" json:"confidence"`
	Description       string `bson:"description" json:"description"`
	RecommendedAction string `bson:"recommended_action" json:"recommended_action"`
}

// PredictionRecord is one analyzed crop image, stored per farmer.
type PredictionRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FarmerID  string             `bson:"farmer_id" json:"farmer_id"`
	ImageURL  string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Result    PredictionResult   `bson:"result" json:"result"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
