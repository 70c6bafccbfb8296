package configs

import (
	"sync"

	"etkinlik.link/configs/configslog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config uygulamanın tüm ortam değişkeni tabanlı ayarlarını tutar.
type Config struct {
	AppEnv string `envconfig:"APP_ENV" default:"development"`
	Port   string `envconfig:"PORT" default:"3000"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:""`
	DBName     string `envconfig:"DB_NAME" default:"etkinlik"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	JWTSecret    string `envconfig:"JWT_SECRET" required:"true"`
	TokenTTLHour int    `envconfig:"TOKEN_TTL_HOURS" default:"24"`

	AdminEmail    string `envconfig:"ADMIN_EMAIL" default:"admin@etkinlik.link"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:""`
}

var (
	cfg     *Config
	cfgOnce sync.Once
)

// LoadConfig .env dosyasını (varsa) ve ortam değişkenlerini okuyarak Config'i doldurur.
// İlk çağrıda yüklenir, sonraki çağrılar aynı örneği döndürür.
func LoadConfig() *Config {
	cfgOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			// .env opsiyonel; production'da değişkenler ortamdan gelir.
			configslog.SLog.Info(".env dosyası bulunamadı, ortam değişkenleri kullanılacak.")
		}
		var c Config
		if err := envconfig.Process("", &c); err != nil {
			configslog.SLog.Fatalf("Konfigürasyon okunamadı: %v", err)
		}
		cfg = &c
	})
	return cfg
}

// Get yüklenmiş konfigürasyonu döndürür.
func Get() *Config {
	return LoadConfig()
}
