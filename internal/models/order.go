package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderLine is a snapshot of a cart line at checkout time.
type OrderLine struct {
	ItemID   string `bson:"itemId" json:"itemId"`
	Name     string `bson:"name" json:"name"`
	Price    int64  `bson:"price" json:"price"`
	Quantity int    `bson:"quantity" json:"quantity"`
	Note     string `bson:"note,omitempty" json:"note,omitempty"`
}

// Order is the persisted record of a dispatched (or about to be dispatched)
// order. Delivery itself happens in the customer's messaging client, so the
// record is kept for the admin dashboard only.
type Order struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Lines        []OrderLine        `bson:"lines" json:"lines"`
	TotalPrice   int64              `bson:"totalPrice" json:"totalPrice"`
	CustomerName string             `bson:"customerName,omitempty" json:"customerName,omitempty"`
	OrderType    string             `bson:"orderType" json:"orderType"`
	TableNumber  string             `bson:"tableNumber,omitempty" json:"tableNumber,omitempty"`
	CustomerNote string             `bson:"customerNote,omitempty" json:"customerNote,omitempty"`
	Message      string             `bson:"message" json:"message"`
	Status       string             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
