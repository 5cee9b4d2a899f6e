package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"menulink/internal/models"
)

type SettingsUpdateRequest struct {
	StoreName      *string `json:"storeName"`
	StoreLocation  *string `json:"storeLocation"`
	OperatingHours *string `json:"operatingHours"`
	WhatsappNumber *string `json:"whatsappNumber"`
}

// loadStoreSettings reads the single settings document. A missing document
// is not an error; callers fall back to defaults so that message generation
// never crashes on an unconfigured store.
func loadStoreSettings(ctx context.Context, db *mongo.Database) (models.StoreSettings, error) {
	var settings models.StoreSettings
	err := db.Collection("settings").FindOne(ctx, bson.M{}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		return models.StoreSettings{}, nil
	}
	if err != nil {
		return models.StoreSettings{}, err
	}
	return settings, nil
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

/*
GET /settings
- Public store card: name, location, hours, contact number
*/
func GetSettings(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /settings"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		settings, err := loadStoreSettings(ctx, db)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, settings)
	}
}

/*
PUT /admin/api/settings
- Upserts the single settings document
- WhatsApp number normalized to digits only on write
*/
func UpdateSettings(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/settings"
		defer handlePanic(c, route)

		var req SettingsUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		update := bson.M{}

		if req.StoreName != nil {
			name := strings.TrimSpace(*req.StoreName)
			if name == "" {
				respondWithError(c, http.StatusBadRequest, route, "storeName cannot be empty")
				return
			}
			update["storeName"] = name
		}
		if req.StoreLocation != nil {
			update["storeLocation"] = strings.TrimSpace(*req.StoreLocation)
		}
		if req.OperatingHours != nil {
			update["operatingHours"] = strings.TrimSpace(*req.OperatingHours)
		}
		if req.WhatsappNumber != nil {
			update["whatsappNumber"] = stripNonDigits(*req.WhatsappNumber)
		}

		if len(update) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "no fields to update")
			return
		}
		update["updatedAt"] = time.Now()

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.StoreSettings
		err := db.Collection("settings").
			FindOneAndUpdate(
				ctx,
				bson.M{},
				bson.M{"$set": update},
				options.FindOneAndUpdate().
					SetUpsert(true).
					SetReturnDocument(options.After),
			).
			Decode(&updated)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}
