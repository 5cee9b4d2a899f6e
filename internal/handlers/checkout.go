package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"menulink/internal/cart"
	"menulink/internal/models"
	"menulink/internal/order"
)

type checkoutRequest struct {
	CustomerName string `json:"customerName"`
	OrderType    string `json:"orderType" binding:"required"`
	TableNumber  string `json:"tableNumber"`
	CustomerNote string `json:"customerNote"`
	Locale       string `json:"locale"`
	ClearCart    bool   `json:"clearCart"`
}

/*
POST /cart/:sid/checkout
- Renders the order transcript and the wa.me link
- Whether the cart is cleared afterwards is the caller's choice (clearCart);
  dispatch happens in the customer's messaging client, outside our control
- A missing WhatsApp number fails the dispatch only; the cart is preserved
*/
func Checkout(db *mongo.Database, store *cart.Store, defaultStoreName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cart/:sid/checkout"
		defer handlePanic(c, route)

		sess, ok := lookupSession(c, store)
		if !ok {
			return
		}

		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		if !order.ValidOrderType(req.OrderType) {
			respondWithError(c, http.StatusBadRequest, route, "invalid orderType")
			return
		}

		locale := order.LocaleID
		if strings.EqualFold(req.Locale, string(order.LocaleEN)) {
			locale = order.LocaleEN
		}

		sess.Lock()
		lines := sess.Cart.Lines()
		totalItems := sess.Cart.TotalItemCount()
		totalPrice := sess.Cart.TotalPrice()
		sess.Unlock()

		if len(lines) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "cart is empty")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		settings, err := loadStoreSettings(ctx, db)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if strings.TrimSpace(settings.StoreName) == "" {
			settings.StoreName = defaultStoreName
		}

		orderCtx := order.Context{
			CustomerName: req.CustomerName,
			OrderType:    req.OrderType,
			TableNumber:  req.TableNumber,
			CustomerNote: req.CustomerNote,
		}

		text := order.BuildMessage(lines, orderCtx, settings, locale, time.Now())

		waURL, err := order.WhatsAppURL(text, settings.WhatsappNumber)
		var confErr order.ConfigurationError
		if errors.As(err, &confErr) {
			log.Printf("[%s] dispatch blocked: %v", route, err)
			c.JSON(http.StatusConflict, gin.H{
				"error": "whatsapp number not configured, check store settings",
			})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "dispatch error")
			return
		}

		record := models.Order{
			Lines:        orderLinesFromCart(lines),
			TotalPrice:   totalPrice,
			CustomerName: strings.TrimSpace(req.CustomerName),
			OrderType:    req.OrderType,
			TableNumber:  strings.TrimSpace(req.TableNumber),
			CustomerNote: strings.TrimSpace(req.CustomerNote),
			Message:      text,
			Status:       "pending",
			CreatedAt:    time.Now(),
		}

		res, err := db.Collection("orders").InsertOne(ctx, record)
		if err != nil {
			// The customer can still send the message; the admin list
			// just misses this order.
			log.Printf("[%s] order record insert failed: %v", route, err)
		} else if id, okID := res.InsertedID.(primitive.ObjectID); okID {
			record.ID = id
		}

		if req.ClearCart {
			sess.Lock()
			sess.Cart.Clear()
			sess.Unlock()
		}

		c.JSON(http.StatusOK, gin.H{
			"orderId":     record.ID.Hex(),
			"message":     text,
			"whatsappUrl": waURL,
			"totalItems":  totalItems,
			"totalPrice":  totalPrice,
		})
	}
}

func orderLinesFromCart(lines []cart.Line) []models.OrderLine {
	out := make([]models.OrderLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, models.OrderLine{
			ItemID:   line.Item.ID,
			Name:     line.Item.Name,
			Price:    line.Item.Price,
			Quantity: line.Quantity,
			Note:     line.Note,
		})
	}
	return out
}
