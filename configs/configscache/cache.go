package configscache

import (
	"context"
	"time"

	"etkinlik.link/configs"
	"etkinlik.link/configs/configslog"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var client *redis.Client

// InitRedis görünüm cache'i için Redis bağlantısını kurar.
// Redis erişilemezse uygulama çalışmaya devam eder; cache katmanı
// hataları miss olarak ele alır.
func InitRedis() {
	cfg := configs.Get()

	client = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		configslog.Log.Warn("Redis bağlantısı doğrulanamadı, cache devre dışı kalabilir", zap.Error(err))
		return
	}
	configslog.SLog.Infof("Redis bağlantısı kuruldu: %s", cfg.RedisAddr)
}

// GetClient aktif Redis istemcisini döndürür.
func GetClient() *redis.Client {
	if client == nil {
		configslog.Log.Fatal("GetClient çağrıldı ancak InitRedis henüz çalıştırılmadı")
	}
	return client
}

// CloseRedis istemciyi kapatır.
func CloseRedis() {
	if client != nil {
		_ = client.Close()
	}
}
