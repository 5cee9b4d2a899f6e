package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"menulink/internal/models"
	"menulink/internal/views"
)

/*
GET /menu
- Active items only, sorted by the admin-maintained sortOrder
- Optional category filter + case-insensitive name search
- Pagination only when page + limit are both present
*/
func GetMenu(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /menu"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		filter := bson.M{
			"isActive": bson.M{"$ne": false},
		}

		if category := strings.TrimSpace(c.Query("category")); category != "" && category != "all" {
			filter["category"] = category
		}

		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["name"] = bson.M{"$regex": search, "$options": "i"}
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "sortOrder", Value: 1}})

		pageStr := c.Query("page")
		limitStr := c.Query("limit")

		if pageStr != "" && limitStr != "" {
			page, limit, err := parsePaginationParams(pageStr, limitStr)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
				return
			}

			findOptions.
				SetSkip((page - 1) * limit).
				SetLimit(limit)
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("menu_items").Find(ctx, filter, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		items, err := decodeMenuItems(ctx, cursor)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		log.Printf("[%s] returning %d items", route, len(items))
		c.JSON(http.StatusOK, items)
	}
}

/*
GET /menu/categories
- Known categories that have at least one active item, in their fixed
  menu order, then the store's custom labels as Distinct returns them
*/
func GetMenuCategories(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /menu/categories"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		raw, err := db.Collection("menu_items").Distinct(
			ctx,
			"category",
			bson.M{"isActive": bson.M{"$ne": false}},
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		present := make(map[string]bool, len(raw))
		custom := make([]string, 0)
		for _, value := range raw {
			name, ok := value.(string)
			if !ok || strings.TrimSpace(name) == "" {
				continue
			}
			present[name] = true
			if !models.IsKnownCategory(name) {
				custom = append(custom, name)
			}
		}

		categories := make([]string, 0, len(present))
		for _, known := range models.KnownCategories {
			if present[known] {
				categories = append(categories, known)
			}
		}
		categories = append(categories, custom...)

		c.JSON(http.StatusOK, gin.H{"data": categories})
	}
}

/*
POST /menu/:id/view
- Best-effort popularity signal; always answers 202
*/
func RegisterItemView(counter views.Counter) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.Param("id"))
		if _, err := primitive.ObjectIDFromHex(id); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		counter.Add(id)
		c.Status(http.StatusAccepted)
	}
}
