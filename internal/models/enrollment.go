package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EnrolledClass joins a student email to a class after payment.
type EnrolledClass struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	EnrolledEmail   string             `bson:"enrolledEmail" json:"enrolledEmail"`
	EnrolledClassID string             `bson:"enrolledClassId" json:"enrolledClassId"`
	TransactionID   string             `bson:"transactionId" json:"transactionId"`
	Price           float64            `bson:"price" json:"price"`
	EnrolledAt      time.Time          `bson:"enrolledAt" json:"enrolledAt"`
}
