package config

import (
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	Port                   string `env:"PORT" envDefault:"8080"`
	DBUser                 string `env:"DB_USER,required"`
	DBPassword             string `env:"DB_PASSWORD,required"`
	DBHost                 string `env:"DB_HOST,required"` // e.g. tcp(host:3306) or unix(/cloudsql/instance)
	DBName                 string `env:"DB_NAME,required"`
	DBPort                 string `env:"DB_PORT" envDefault:"3306"`
	InstanceConnectionName string `env:"INSTANCE_CONNECTION_NAME"`

	FirebaseProjectID string `env:"FIREBASE_PROJECT_ID"`
	CredentialsFile   string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	StorageBucket     string `env:"STORAGE_BUCKET"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	NATSURL       string `env:"NATS_URL"`

	LogLevel            string `env:"LOG_LEVEL" envDefault:"info"`
	AllowedOriginSuffix string `env:"ALLOWED_ORIGIN_SUFFIX" envDefault:"vercel.app"`

	Settlement Settlement
	Auction    Auction
}

// Settlement controls the auto-generated win messages.
type Settlement struct {
	Currency        string `env:"CURRENCY" envDefault:"S/"`
	PaymentDays     int    `env:"PAYMENT_DAYS" envDefault:"5"`
	CloseDateLayout string `env:"CLOSE_DATE_LAYOUT" envDefault:"2/1/2006, 15:04:05"`
	Timezone        string `env:"TIMEZONE" envDefault:"America/Lima"`
}

type Auction struct {
	AntiSnipeWindow     time.Duration `env:"ANTI_SNIPE_WINDOW" envDefault:"5m"`
	AntiSnipeExtension  time.Duration `env:"ANTI_SNIPE_EXTENSION" envDefault:"5m"`
	TxMaxAttempts       int           `env:"TX_MAX_ATTEMPTS" envDefault:"5"`
	BuyNowLockTTL       time.Duration `env:"BUY_NOW_LOCK_TTL" envDefault:"30s"`
	PublishInterval     time.Duration `env:"PUBLISH_INTERVAL" envDefault:"15s"`
	ExpirySweepInterval time.Duration `env:"EXPIRY_SWEEP_INTERVAL" envDefault:"0s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Location resolves the settlement timezone, falling back to UTC.
func (s Settlement) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
