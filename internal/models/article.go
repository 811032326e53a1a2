package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Article is an editorial post from the eduArticles collection.
type Article struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Content     string             `bson:"content" json:"content"`
	Image       string             `bson:"image" json:"image"`
	Author      string             `bson:"author" json:"author"`
	PublishedAt time.Time          `bson:"publishedAt" json:"publishedAt"`
}
