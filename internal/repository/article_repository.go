package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noah-isme/eduspark-api/internal/models"
)

// ArticleRepository reads editorial articles.
type ArticleRepository struct {
	c *mongo.Collection
}

// NewArticleRepository constructs an ArticleRepository.
func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{c: db.Collection(CollectionArticles)}
}

// List returns every article.
func (r *ArticleRepository) List(ctx context.Context) ([]models.Article, error) {
	cur, err := r.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer cur.Close(ctx)

	articles := make([]models.Article, 0)
	if err := cur.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("decode articles: %w", err)
	}
	return articles, nil
}
