package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole represents the role stored on a user document.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
	// RoleUnknown is reported for emails that have no user document.
	RoleUnknown UserRole = "unknown"
)

// User represents a document in the users collection.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Photo     string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Role      UserRole           `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// UserFilter captures filtering criteria for listing users.
type UserFilter struct {
	Search string
	Page   Page
}
