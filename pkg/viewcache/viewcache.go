// Package viewcache liste görünümleri için Redis destekli bir JSON cache
// sağlar. Çekirdek kural: her başarılı mutasyondan sonra ilgili anahtarlar
// invalidate edilir; bunun ötesinde tazelik garantisi verilmez.
package viewcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss anahtar cache'te yok.
var ErrCacheMiss = errors.New("cache miss")

// IStore görünüm cache'i arayüzü.
type IStore interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

// RedisStore IStore'un Redis implementasyonu.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore verilen istemciyle bir RedisStore oluşturur.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get anahtarı okuyup JSON'dan dest'e çözer. Anahtar yoksa ErrCacheMiss döner.
func (s *RedisStore) Get(ctx context.Context, key string, dest any) error {
	raw, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal([]byte(raw), dest)
}

// Set değeri JSON olarak yazar.
func (s *RedisStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, raw, ttl).Err()
}

// Invalidate verilen anahtarları siler.
func (s *RedisStore) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

var _ IStore = (*RedisStore)(nil)

// Anahtar üreticileri. Mutasyon yapan servisler bu anahtarları invalidate
// eder, okuyan servisler aynı anahtarlardan okur.

// EventInvitationsKey bir etkinliğin davet listesi.
func EventInvitationsKey(eventID uint) string {
	return fmt.Sprintf("invitations:event:%d", eventID)
}

// UserInvitationsKey bir kullanıcının kendi davet listesi.
func UserInvitationsKey(userID uint) string {
	return fmt.Sprintf("invitations:user:%d", userID)
}

// OrganizerStatsKey bir organizatörün türetilmiş istatistikleri.
func OrganizerStatsKey(organizerUserID uint) string {
	return fmt.Sprintf("organizer:stats:%d", organizerUserID)
}
