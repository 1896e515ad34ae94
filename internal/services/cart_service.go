package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dias221467/Storefront/internal/models"
	"github.com/Dias221467/Storefront/internal/repository"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartStore is the persistence the cart service needs.
type CartStore interface {
	GetCartByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	AddItem(ctx context.Context, userID primitive.ObjectID, item models.CartItem) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, userID, itemID primitive.ObjectID, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID, itemID primitive.ObjectID) (*models.Cart, error)
}

type CartService struct {
	repo     CartStore
	products ProductStore
}

func NewCartService(repo CartStore, products ProductStore) *CartService {
	return &CartService{
		repo:     repo,
		products: products,
	}
}

// GetCart returns the user's cart. A user who never added anything has no
// cart and gets ErrCartNotFound.
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}

	cart, err := s.repo.GetCartByUser(ctx, uid)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return cart, nil
}

func (s *CartService) AddItem(ctx context.Context, userID string, req models.AddItemRequest) (*models.Cart, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}
	pid, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return nil, ErrInvalidID
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.products.GetProductByID(ctx, pid)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}
	if len(product.Sizes) > 0 && !contains(product.Sizes, req.Size) {
		return nil, ErrInvalidSize
	}

	item := models.CartItem{
		ID:        primitive.NewObjectID(),
		ProductID: pid,
		Quantity:  req.Quantity,
		Size:      req.Size,
	}

	cart, err := s.repo.AddItem(ctx, uid, item)
	if err != nil {
		return nil, fmt.Errorf("failed to add item: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"userID":    userID,
		"productID": req.ProductID,
		"quantity":  req.Quantity,
	}).Info("Item added to cart")
	return cart, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID string, req models.UpdateQuantityRequest) (*models.Cart, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}
	iid, err := primitive.ObjectIDFromHex(req.ItemID)
	if err != nil {
		return nil, ErrInvalidID
	}
	if req.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	cart, err := s.repo.UpdateQuantity(ctx, uid, iid, req.Quantity)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update quantity: %w", err)
	}
	return cart, nil
}

// DeleteItem removes one line from the user's cart by item identity.
func (s *CartService) DeleteItem(ctx context.Context, userID, itemID string) (*models.Cart, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}
	iid, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return nil, ErrInvalidID
	}

	cart, err := s.repo.RemoveItem(ctx, uid, iid)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete item: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"userID": userID,
		"itemID": itemID,
	}).Info("Item removed from cart")
	return cart, nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
