package repository

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/noah-isme/eduspark-api/internal/models"
)

func pageOptions(page models.Page) *options.FindOptions {
	opts := options.Find()
	if page.Limited() {
		opts.SetSkip(page.Skip()).SetLimit(int64(page.Size))
	}
	return opts
}

func containsFold(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

func insertedHex(res *mongo.InsertOneResult) string {
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return ""
}

func updateResult(res *mongo.UpdateResult) models.UpdateResult {
	return models.UpdateResult{Acknowledged: true, MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}
}
