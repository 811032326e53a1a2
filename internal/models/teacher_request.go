package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Experience levels accepted on a teacher request.
const (
	ExperienceBeginner    = "beginner"
	ExperienceMidLevel    = "mid-level"
	ExperienceExperienced = "experienced"
)

// TeacherRequest represents an application to become a teacher.
type TeacherRequest struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Image      string             `bson:"image" json:"image"`
	Title      string             `bson:"title" json:"title"`
	Experience string             `bson:"experience" json:"experience"`
	Category   string             `bson:"category" json:"category"`
	Status     ClassStatus        `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
