package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"menulink/internal/cart"
	"menulink/internal/config"
	"menulink/internal/database"
	"menulink/internal/handlers"
	"menulink/internal/middleware"
	"menulink/internal/views"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureMenuItemIndexes(db); err != nil {
		log.Printf("menu item index warning: %v", err)
	}
	if err := database.EnsureCategoryIndexes(db); err != nil {
		log.Printf("category index warning: %v", err)
	}
	if err := database.EnsureAdminIndexes(db); err != nil {
		log.Printf("admin index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}

	// View counter: buffered through Redis when configured, direct $inc
	// otherwise. Either way the increments stay fire-and-forget.
	var counter views.Counter = views.NewMongoCounter(db)
	if config.AppEnv.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: config.AppEnv.RedisAddr})
		redisCounter := views.NewRedisCounter(redisClient, db)
		go redisCounter.Run(context.Background(), config.AppEnv.ViewFlushEvery)
		counter = redisCounter
		log.Println("view counter: redis at", config.AppEnv.RedisAddr)
	}

	carts := cart.NewStore(config.AppEnv.CartIdleTTL)
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if removed := carts.PurgeIdle(time.Now()); removed > 0 {
				log.Printf("purged %d idle cart sessions", removed)
			}
		}
	}()

	r := gin.Default()

	r.GET("/menu", handlers.GetMenu(db))
	r.GET("/menu/categories", handlers.GetMenuCategories(db))
	r.POST("/menu/:id/view", handlers.RegisterItemView(counter))
	r.GET("/settings", handlers.GetSettings(db))

	r.POST("/cart", handlers.CreateCartSession(carts))
	r.GET("/cart/:sid", handlers.GetCart(carts))
	r.DELETE("/cart/:sid", handlers.ClearCart(carts))
	r.POST("/cart/:sid/items", handlers.AddCartItem(db, carts, counter))
	r.PATCH("/cart/:sid/items", handlers.UpdateCartItem(carts))
	r.DELETE("/cart/:sid/items", handlers.RemoveCartItem(carts))
	r.POST("/cart/:sid/checkout", handlers.Checkout(db, carts, config.AppEnv.DefaultStoreName))

	r.POST("/admin/login", handlers.AdminLogin(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		})

		admin.GET("/items", handlers.GetAllMenuItems(db))
		admin.POST("/items", handlers.CreateMenuItem(db))
		admin.PUT("/items/:id", handlers.UpdateMenuItem(db))
		admin.DELETE("/items/:id", handlers.DeleteMenuItem(db))

		admin.GET("/categories", handlers.GetAllCategories(db))
		admin.POST("/categories", handlers.CreateCategory(db))
		admin.PUT("/categories/:id", handlers.UpdateCategory(db))
		admin.DELETE("/categories/:id", handlers.DeleteCategory(db))

		admin.GET("/settings", handlers.GetSettings(db))
		admin.PUT("/settings", handlers.UpdateSettings(db))

		admin.GET("/orders", handlers.GetOrders(db))
		admin.DELETE("/orders/:id", handlers.DeleteOrder(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
