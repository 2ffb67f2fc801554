package database

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"artcc_backend/internals/configs"
)

var RDB *redis.Client

const redisPingTimeout = 3 * time.Second

// ConnectRedis opens the role-cache client. The app keeps running if
// redis is unreachable; role lookups then fall back to the database.
func ConnectRedis() {
	if configs.RedisAddr == "" {
		log.Println("[WARN] REDIS_ADDR not set, role cache disabled")
		return
	}

	RDB = redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.GetEnv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := RDB.Ping(ctx).Err(); err != nil {
		log.Printf("[ERROR] Redis connect failed: %v", err)
		RDB = nil
		return
	}

	log.Println("[INFO] Redis connected.")
}
