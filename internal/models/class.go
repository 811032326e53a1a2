package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClassStatus is the review state of a class.
type ClassStatus string

const (
	ClassPending  ClassStatus = "pending"
	ClassApproved ClassStatus = "approved"
	ClassRejected ClassStatus = "rejected"
)

// Valid reports whether the status is one of the known review states.
func (s ClassStatus) Valid() bool {
	switch s {
	case ClassPending, ClassApproved, ClassRejected:
		return true
	}
	return false
}

// Class represents a document in the classes collection.
type Class struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title           string             `bson:"title" json:"title"`
	Name            string             `bson:"name" json:"name"`
	Email           string             `bson:"email" json:"email"`
	Price           float64            `bson:"price" json:"price"`
	Description     string             `bson:"description" json:"description"`
	Image           string             `bson:"image" json:"image"`
	Status          ClassStatus        `bson:"status" json:"status"`
	TotalEnrollment int64              `bson:"totalEnrollment" json:"totalEnrollment"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// ClassFilter narrows class listings.
type ClassFilter struct {
	Status ClassStatus
	Owner  string
	Search string
	Page   Page
}

// ClassUpdate holds the descriptive fields a teacher may change.
type ClassUpdate struct {
	Title       *string  `bson:"title,omitempty"`
	Price       *float64 `bson:"price,omitempty"`
	Description *string  `bson:"description,omitempty"`
	Image       *string  `bson:"image,omitempty"`
}

// Empty reports whether no field is set.
func (u ClassUpdate) Empty() bool {
	return u.Title == nil && u.Price == nil && u.Description == nil && u.Image == nil
}
