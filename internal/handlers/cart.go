package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"menulink/internal/cart"
	"menulink/internal/models"
	"menulink/internal/views"
)

/* =========================
   REQUEST DTOs
========================= */

type addCartItemRequest struct {
	ItemID   string `json:"itemId" binding:"required"`
	Quantity int    `json:"quantity"`
	Note     string `json:"note"`
}

type updateCartItemRequest struct {
	ItemID   string  `json:"itemId" binding:"required"`
	Note     string  `json:"note"`
	Delta    *int    `json:"delta"`
	Quantity *int    `json:"quantity"`
	NewNote  *string `json:"newNote"`
}

func cartResponse(sess *cart.Session) gin.H {
	return gin.H{
		"sessionId":  sess.ID,
		"lines":      sess.Cart.Lines(),
		"totalItems": sess.Cart.TotalItemCount(),
		"totalPrice": sess.Cart.TotalPrice(),
	}
}

func lookupSession(c *gin.Context, store *cart.Store) (*cart.Session, bool) {
	sess, ok := store.Get(c.Param("sid"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "cart session not found"})
		return nil, false
	}
	return sess, true
}

/* =========================
   SESSION LIFECYCLE
========================= */

// POST /cart
func CreateCartSession(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := store.Create()
		c.JSON(http.StatusCreated, cartResponse(sess))
	}
}

// GET /cart/:sid
func GetCart(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := lookupSession(c, store)
		if !ok {
			return
		}

		sess.Lock()
		defer sess.Unlock()
		c.JSON(http.StatusOK, cartResponse(sess))
	}
}

// DELETE /cart/:sid
func ClearCart(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := lookupSession(c, store)
		if !ok {
			return
		}

		sess.Lock()
		defer sess.Unlock()
		sess.Cart.Clear()
		c.JSON(http.StatusOK, cartResponse(sess))
	}
}

/* =========================
   LINE MUTATIONS
========================= */

/*
POST /cart/:sid/items
- Snapshots the catalogue item into the cart line
- Fires a best-effort view increment; a flaky counter never blocks the add
*/
func AddCartItem(db *mongo.Database, store *cart.Store, counter views.Counter) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cart/:sid/items"
		defer handlePanic(c, route)

		sess, ok := lookupSession(c, store)
		if !ok {
			return
		}

		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		itemID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.ItemID))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid itemId")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var item models.MenuItem
		err = db.Collection("menu_items").FindOne(
			ctx,
			bson.M{
				"_id":      itemID,
				"isActive": bson.M{"$ne": false},
			},
		).Decode(&item)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "menu item not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		ref := cart.ItemRef{
			ID:    item.ID.Hex(),
			Name:  item.Name,
			Price: item.Price,
			Photo: item.Photo,
		}

		sess.Lock()
		_, err = sess.Cart.AddItem(ref, req.Quantity, req.Note)
		sess.Unlock()

		var invalid cart.ValidationError
		if errors.As(err, &invalid) {
			respondWithError(c, http.StatusBadRequest, route, invalid.Error())
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart error")
			return
		}

		counter.Add(ref.ID)

		sess.Lock()
		defer sess.Unlock()
		c.JSON(http.StatusOK, cartResponse(sess))
	}
}

/*
PATCH /cart/:sid/items
- delta: relative quantity change, quantity: absolute set, newNote: note edit
- A quantity reaching zero removes the line
*/
func UpdateCartItem(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /cart/:sid/items"
		defer handlePanic(c, route)

		sess, ok := lookupSession(c, store)
		if !ok {
			return
		}

		var req updateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}
		if req.Delta == nil && req.Quantity == nil && req.NewNote == nil {
			respondWithError(c, http.StatusBadRequest, route, "nothing to update")
			return
		}

		key := cart.LineKey{ItemID: strings.TrimSpace(req.ItemID), Note: req.Note}

		sess.Lock()
		defer sess.Unlock()

		// Note first, quantity second: once the note edit succeeds the
		// line is guaranteed to exist under the renamed key, so the
		// quantity step cannot fail partway through, even when the new
		// quantity evicts the line.
		var err error
		if req.NewNote != nil {
			if err = sess.Cart.UpdateNote(key, *req.NewNote); err == nil {
				key.Note = *req.NewNote
			}
		}
		if err == nil {
			switch {
			case req.Delta != nil:
				err = sess.Cart.UpdateQuantity(key, *req.Delta)
			case req.Quantity != nil:
				err = sess.Cart.SetQuantity(key, *req.Quantity)
			}
		}

		var notFound cart.LineNotFoundError
		if errors.As(err, &notFound) {
			respondWithError(c, http.StatusNotFound, route, notFound.Error())
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart error")
			return
		}

		c.JSON(http.StatusOK, cartResponse(sess))
	}
}

/*
DELETE /cart/:sid/items?itemId=...&note=...
- Idempotent: deleting an absent line still answers 200
*/
func RemoveCartItem(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /cart/:sid/items"
		defer handlePanic(c, route)

		sess, ok := lookupSession(c, store)
		if !ok {
			return
		}

		itemID := strings.TrimSpace(c.Query("itemId"))
		if itemID == "" {
			respondWithError(c, http.StatusBadRequest, route, "itemId required")
			return
		}

		sess.Lock()
		defer sess.Unlock()
		sess.Cart.RemoveLine(cart.LineKey{ItemID: itemID, Note: c.Query("note")})
		c.JSON(http.StatusOK, cartResponse(sess))
	}
}
