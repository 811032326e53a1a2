package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback is a student rating of a class.
type Feedback struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ClassID     string             `bson:"classId" json:"classId"`
	Title       string             `bson:"title" json:"title"`
	Email       string             `bson:"email" json:"email"`
	Name        string             `bson:"name" json:"name"`
	Image       string             `bson:"image" json:"image"`
	Rating      int                `bson:"rating" json:"rating"`
	Description string             `bson:"description" json:"description"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
