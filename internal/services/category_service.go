package services

import (
	"context"

	"civicBack/internal/models"
)

type CategoryStore interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
}

type CategoryService struct {
	CategoryRepo CategoryStore
}

func (s *CategoryService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	return s.CategoryRepo.GetAllCategories(ctx)
}
