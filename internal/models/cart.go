package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one line of a cart. Identity is ID, not ProductID: the same
// product may appear once per size.
type CartItem struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	ProductID primitive.ObjectID `bson:"productID" json:"productID"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Size      string             `bson:"size" json:"size"`
}

// Cart is the per-user cart document.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID `bson:"userID" json:"userID"`
	Items     []CartItem         `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type AddItemRequest struct {
	ProductID string `json:"productID" schema:"productID"`
	Quantity  int    `json:"quantity" schema:"quantity"`
	Size      string `json:"size" schema:"size"`
}

type UpdateQuantityRequest struct {
	ItemID   string `json:"itemID" schema:"itemID"`
	Quantity int    `json:"quantity" schema:"quantity"`
}

type DeleteItemRequest struct {
	ItemID string `json:"itemID" schema:"itemID"`
}
