package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cleaning-supplies-api/auth"
	"cleaning-supplies-api/cache"
	"cleaning-supplies-api/configs"
	"cleaning-supplies-api/events"
	"cleaning-supplies-api/routes"
	"cleaning-supplies-api/store"

	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		log.Fatal("config:", err)
	}

	ctx := context.Background()
	deps := routes.Deps{
		Hasher:      auth.NewHasher(cfg.BcryptCost),
		Tokens:      auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL),
		RequireAuth: cfg.RequireAuth,
	}

	var client *mongo.Client
	switch cfg.StoreDriver {
	case configs.DriverMemory:
		deps.Store = store.NewMemory()
	default:
		client, err = configs.ConnectDB(ctx, cfg.MongoURI)
		if err != nil {
			log.Fatal("failed to connect to MongoDB:", err)
		}
		mongoStore := store.NewMongo(configs.GetDatabase(client, cfg.DBName))
		if err := mongoStore.EnsureIndexes(ctx); err != nil {
			log.Fatal("failed to create indexes:", err)
		}
		deps.Store = mongoStore
	}

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = events.Connect(cfg.KafkaBrokers, 10, 5*time.Second)
		if err != nil {
			log.Fatal(err)
		}
		deps.Events = producer
	}

	var redisClose func() error
	if cfg.RedisAddr != "" {
		rdb, err := cache.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			// run without the brand cache
			log.Println("Redis unavailable:", err)
		} else {
			deps.Cache = cache.NewBrandCache(rdb, cfg.BrandsCacheTTL)
			redisClose = rdb.Close
		}
	}

	app := routes.New(deps)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal(err)
		}
	}()
	log.Printf("Server is running on port %s", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Println("server shutdown:", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Println("kafka close:", err)
		}
	}
	if redisClose != nil {
		if err := redisClose(); err != nil {
			log.Println("redis close:", err)
		}
	}
	if client != nil {
		if err := client.Disconnect(shutdownCtx); err != nil {
			log.Println("mongo disconnect:", err)
		}
	}
}
