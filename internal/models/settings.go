package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StoreSettings is a single document describing the store. WhatsappNumber is
// stored digits-only, no leading "+" or "0".
type StoreSettings struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StoreName      string             `bson:"storeName" json:"storeName"`
	StoreLocation  string             `bson:"storeLocation,omitempty" json:"storeLocation,omitempty"`
	OperatingHours string             `bson:"operatingHours,omitempty" json:"operatingHours,omitempty"`
	WhatsappNumber string             `bson:"whatsappNumber" json:"whatsappNumber"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
