package settings

import (
	"net/url"
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

func InitSettings(confPath string) {
	_ = godotenv.Load() // .env is optional

	viper.SetDefault("server.ip", "")
	viper.SetDefault("server.port", 5173)
	viper.SetDefault("server.lang", "en")
	viper.SetDefault("server.start_time", "2025-03-01") // snowflake epoch
	viper.SetDefault("server.machine_id", 1)
	viper.SetDefault("server.develop_mode", false)
	viper.SetDefault("server.shutdown_waitting_time", 30) // seconds
	viper.SetDefault("server.site_url", "http://localhost:5173")
	viper.SetDefault("server.cors_origins", []string{})

	viper.SetDefault("service.swagger.enable", true)

	viper.SetDefault("backend.database", "rest") // rest | postgres | memory
	viper.SetDefault("backend.jwt_secret", "")

	viper.SetDefault("postgres.dsn", "")
	viper.SetDefault("postgres.debug", false)
	viper.SetDefault("postgres.auto_migrate", false)

	viper.SetDefault("storage.driver", "supabase") // supabase | s3 | qiniu | memory
	viper.SetDefault("storage.bucket", "post-images")

	viper.SetDefault("s3.region", "us-east-1")
	viper.SetDefault("s3.endpoint", "")
	viper.SetDefault("s3.access_key_id", "")
	viper.SetDefault("s3.secret_access_key", "")
	viper.SetDefault("s3.public_base_url", "")

	viper.SetDefault("qiniu.access_key", "")
	viper.SetDefault("qiniu.secret_key", "")
	viper.SetDefault("qiniu.base_url", "")
	viper.SetDefault("qiniu.use_https", true)

	viper.SetDefault("auth.provider", "google")

	viper.SetDefault("session.store", "memory") // memory | redis
	viper.SetDefault("session.cookie_name", "sb-session")
	viper.SetDefault("session.secure_cookie", false)
	viper.SetDefault("session.ttl", 604800)
	viper.SetDefault("session.size", 10000)

	viper.SetDefault("redis.host", "127.0.0.1")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.poolsize", 10)
	viper.SetDefault("redis.max_oper_time", 3)

	viper.SetDefault("localcache.size", 1024)
	viper.SetDefault("inmemory.seed", true)  // sample communities for the memory database
	viper.SetDefault("query.stale_time", 30) // seconds, 0 disables caching

	viper.SetDefault("logger.level", 0)
	viper.SetDefault("logger.path", "./logs/supasocial.log")
	viper.SetDefault("logger.max_size", 16)
	viper.SetDefault("logger.max_backups", 5)
	viper.SetDefault("logger.compress", false)
	viper.SetDefault("logger.console", true)

	viper.AutomaticEnv()
	_ = viper.BindEnv("backend.url", "SUPABASE_URL", "VITE_SUPABASE_URL")
	_ = viper.BindEnv("backend.key", "SUPABASE_ANON_KEY", "VITE_SUPABASE_ANON_KEY")
	_ = viper.BindEnv("backend.jwt_secret", "SUPABASE_JWT_SECRET", "JWT_SECRET")
	_ = viper.BindEnv("postgres.dsn", "SUPABASE_DB_URL", "DATABASE_URL")

	if confPath != "" {
		if _, err := os.Stat(confPath); err == nil {
			viper.SetConfigFile(confPath)
			if err := viper.ReadInConfig(); err != nil {
				panic(err.Error())
			}
		}
	}

	// the platform handle cannot be built without these
	if err := Validate(); err != nil {
		panic(err.Error())
	}
}

// Validate checks the values the backend client handle is built from.
func Validate() error {
	rawURL := viper.GetString("backend.url")
	if rawURL == "" {
		return errors.New("settings: backend.url (SUPABASE_URL) is required")
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.Errorf("settings: invalid backend.url %q", rawURL)
	}
	if viper.GetString("backend.key") == "" {
		return errors.New("settings: backend.key (SUPABASE_ANON_KEY) is required")
	}
	return nil
}
