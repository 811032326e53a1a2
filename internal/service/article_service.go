package service

import (
	"context"

	"github.com/noah-isme/eduspark-api/internal/models"
	appErrors "github.com/noah-isme/eduspark-api/pkg/errors"
)

type articleRepository interface {
	List(ctx context.Context) ([]models.Article, error)
}

// ArticleService serves editorial articles.
type ArticleService struct {
	repo articleRepository
}

// NewArticleService constructs an ArticleService.
func NewArticleService(repo articleRepository) *ArticleService {
	return &ArticleService{repo: repo}
}

// List returns every article.
func (s *ArticleService) List(ctx context.Context) ([]models.Article, error) {
	articles, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list articles")
	}
	return articles, nil
}
