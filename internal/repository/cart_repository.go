package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/Storefront/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CartRepository stores one cart document per user.
type CartRepository struct {
	collection *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{collection: db.Collection("carts")}
}

// EnsureIndexes enforces one cart per user and speeds up the stale cart scan.
func (r *CartRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userID", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "updatedAt", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create cart indexes: %w", err)
	}
	return nil
}

func (r *CartRepository) GetCartByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	if err := r.collection.FindOne(ctx, bson.M{"userID": userID}).Decode(&cart); err != nil {
		return nil, notFound(err)
	}
	return &cart, nil
}

// AddItem bumps the quantity of the matching product+size line, or appends
// the item, creating the cart on first use.
func (r *CartRepository) AddItem(ctx context.Context, userID primitive.ObjectID, item models.CartItem) (*models.Cart, error) {
	now := time.Now()

	res, err := r.collection.UpdateOne(ctx,
		bson.M{
			"userID": userID,
			"items":  bson.M{"$elemMatch": bson.M{"productID": item.ProductID, "size": item.Size}},
		},
		bson.M{
			"$inc": bson.M{"items.$.quantity": item.Quantity},
			"$set": bson.M{"updatedAt": now},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to increment cart item: %w", err)
	}

	if res.MatchedCount == 0 {
		_, err = r.collection.UpdateOne(ctx,
			bson.M{"userID": userID},
			bson.M{
				"$push":        bson.M{"items": item},
				"$set":         bson.M{"updatedAt": now},
				"$setOnInsert": bson.M{"createdAt": now},
			},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to add cart item: %w", err)
		}
	}

	return r.GetCartByUser(ctx, userID)
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, userID, itemID primitive.ObjectID, quantity int) (*models.Cart, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var cart models.Cart
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"userID": userID, "items._id": itemID},
		bson.M{"$set": bson.M{"items.$.quantity": quantity, "updatedAt": time.Now()}},
		opts,
	).Decode(&cart)
	if err != nil {
		return nil, notFound(err)
	}
	return &cart, nil
}

// RemoveItem pulls the item from the user's cart. Removing an item that is
// not in the cart leaves the cart unchanged.
func (r *CartRepository) RemoveItem(ctx context.Context, userID, itemID primitive.ObjectID) (*models.Cart, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var cart models.Cart
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"userID": userID},
		bson.M{
			"$pull": bson.M{"items": bson.M{"_id": itemID}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
		opts,
	).Decode(&cart)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"userID": userID.Hex(),
			"itemID": itemID.Hex(),
			"error":  err,
		}).Warn("Failed to remove cart item")
		return nil, notFound(err)
	}
	return &cart, nil
}

// DeleteStaleCarts removes empty carts untouched since before.
func (r *CartRepository) DeleteStaleCarts(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{
		"items":     bson.M{"$size": 0},
		"updatedAt": bson.M{"$lt": before},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale carts: %w", err)
	}
	return res.DeletedCount, nil
}
