package services

import (
	"context"
	"testing"

	"github.com/Dias221467/Storefront/internal/models"
	"github.com/Dias221467/Storefront/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateProductValidation(t *testing.T) {
	svc := NewProductService(memory.New())

	_, err := svc.CreateProduct(context.Background(), &models.Product{Title: " ", Category: "shirts", Price: 5})
	assert.ErrorIs(t, err, ErrInvalidProduct)

	_, err = svc.CreateProduct(context.Background(), &models.Product{Title: "Tee", Category: "shirts", Price: -1})
	assert.ErrorIs(t, err, ErrInvalidProduct)

	p, err := svc.CreateProduct(context.Background(), &models.Product{Title: "Tee", Category: "shirts", Price: 5})
	require.NoError(t, err)
	assert.False(t, p.ID.IsZero())
}

func TestGetProductsByCategoryAndImages(t *testing.T) {
	tee := models.Product{ID: primitive.NewObjectID(), Title: "Tee", Category: "shirts"}
	hat := models.Product{ID: primitive.NewObjectID(), Title: "Cap", Category: "hats"}
	svc := NewProductService(memory.New(memory.WithProducts(tee, hat)))
	ctx := context.Background()

	shirts, err := svc.GetProducts(ctx, "shirts")
	require.NoError(t, err)
	require.Len(t, shirts, 1)
	assert.Equal(t, "Tee", shirts[0].Title)

	updated, err := svc.AddImage(ctx, tee.ID.Hex(), "/product/ProductAssets/tee.png")
	require.NoError(t, err)
	assert.Equal(t, []string{"/product/ProductAssets/tee.png"}, updated.Images)

	_, err = svc.GetProduct(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrProductNotFound)
}
