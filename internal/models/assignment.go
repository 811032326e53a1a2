package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission records one student turning in an assignment.
type Submission struct {
	Email string    `bson:"email" json:"email"`
	Date  time.Time `bson:"date" json:"date"`
}

// Assignment belongs to a class. TotalSubmitted always equals len(SubmittedEmails).
type Assignment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ClassID         string             `bson:"classId" json:"classId"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description" json:"description"`
	Deadline        time.Time          `bson:"deadline" json:"deadline"`
	SubmittedEmails []Submission       `bson:"submittedEmails" json:"submittedEmails"`
	TotalSubmitted  int64              `bson:"total_submitted" json:"total_submitted"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
