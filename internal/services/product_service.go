package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dias221467/Storefront/internal/models"
	"github.com/Dias221467/Storefront/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductStore is the catalog persistence.
type ProductStore interface {
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	GetProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	GetProducts(ctx context.Context, category string) ([]models.Product, error)
	AddImage(ctx context.Context, id primitive.ObjectID, path string) (*models.Product, error)
}

type ProductService struct {
	repo ProductStore
}

func NewProductService(repo ProductStore) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	product.Title = strings.TrimSpace(product.Title)
	product.Category = strings.TrimSpace(product.Category)
	if product.Title == "" || product.Category == "" || product.Price < 0 {
		return nil, ErrInvalidProduct
	}
	return s.repo.CreateProduct(ctx, product)
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	product, err := s.repo.GetProductByID(ctx, objID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

func (s *ProductService) GetProducts(ctx context.Context, category string) ([]models.Product, error) {
	return s.repo.GetProducts(ctx, strings.TrimSpace(category))
}

// AddImage records an uploaded image path on the product.
func (s *ProductService) AddImage(ctx context.Context, id, path string) (*models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	product, err := s.repo.AddImage(ctx, objID, path)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to add product image: %w", err)
	}
	return product, nil
}
