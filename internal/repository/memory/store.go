// Package memory is an in-process replacement for the MongoDB repositories,
// used for local development and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Dias221467/Storefront/internal/models"
	"github.com/Dias221467/Storefront/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store keeps users, products and carts in maps guarded by one lock.
type Store struct {
	mu       sync.RWMutex
	users    map[primitive.ObjectID]*models.User
	products map[primitive.ObjectID]*models.Product
	carts    map[primitive.ObjectID]*models.Cart
	now      func() time.Time
}

// Option configures the store.
type Option func(*Store)

// WithClock overrides the clock used for timestamps.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) {
		if fn != nil {
			s.now = fn
		}
	}
}

// WithProducts seeds the catalog.
func WithProducts(products ...models.Product) Option {
	return func(s *Store) {
		for i := range products {
			p := products[i]
			if p.ID.IsZero() {
				p.ID = primitive.NewObjectID()
			}
			s.products[p.ID] = &p
		}
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		users:    make(map[primitive.ObjectID]*models.User),
		products: make(map[primitive.ObjectID]*models.Product),
		carts:    make(map[primitive.ObjectID]*models.Cart),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Users

func (s *Store) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, repository.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = s.now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	s.users[user.ID] = &cp
	return user, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// Products

func (s *Store) CreateProduct(_ context.Context, product *models.Product) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product.ID = primitive.NewObjectID()
	product.CreatedAt = s.now()
	product.UpdatedAt = product.CreatedAt
	if product.Images == nil {
		product.Images = []string{}
	}
	s.products[product.ID] = copyProduct(product)
	return product, nil
}

func (s *Store) GetProductByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyProduct(p), nil
}

func (s *Store) GetProducts(_ context.Context, category string) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Product{}
	for _, p := range s.products {
		if category == "" || p.Category == category {
			out = append(out, *copyProduct(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.Hex() < out[j].ID.Hex()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) AddImage(_ context.Context, id primitive.ObjectID, path string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.Images = append(p.Images, path)
	p.UpdatedAt = s.now()
	return copyProduct(p), nil
}

// Carts

func (s *Store) GetCartByUser(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyCart(cart), nil
}

func (s *Store) AddItem(_ context.Context, userID primitive.ObjectID, item models.CartItem) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cart, ok := s.carts[userID]
	if !ok {
		cart = &models.Cart{ID: primitive.NewObjectID(), UserID: userID, Items: []models.CartItem{}, CreatedAt: now}
		s.carts[userID] = cart
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == item.ProductID && cart.Items[i].Size == item.Size {
			cart.Items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, item)
	}
	cart.UpdatedAt = now
	return copyCart(cart), nil
}

func (s *Store) UpdateQuantity(_ context.Context, userID, itemID primitive.ObjectID, quantity int) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items[i].Quantity = quantity
			cart.UpdatedAt = s.now()
			return copyCart(cart), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) RemoveItem(_ context.Context, userID, itemID primitive.ObjectID) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	kept := make([]models.CartItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	cart.Items = kept
	cart.UpdatedAt = s.now()
	return copyCart(cart), nil
}

func (s *Store) DeleteStaleCarts(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for userID, cart := range s.carts {
		if len(cart.Items) == 0 && cart.UpdatedAt.Before(before) {
			delete(s.carts, userID)
			n++
		}
	}
	return n, nil
}

func copyProduct(p *models.Product) *models.Product {
	cp := *p
	cp.Images = append([]string{}, p.Images...)
	cp.Sizes = append([]string(nil), p.Sizes...)
	return &cp
}

func copyCart(c *models.Cart) *models.Cart {
	cp := *c
	cp.Items = append([]models.CartItem{}, c.Items...)
	return &cp
}
