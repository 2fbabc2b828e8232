package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the process needs, built once at startup and
// passed down explicitly. No package-level state.
type Config struct {
	ListenAddr string `mapstructure:"listen_addr"`
	Env        string `mapstructure:"env"` // "development" or "production"
	StaticDir  string `mapstructure:"static_dir"`

	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`

	JWT struct {
		Secret                    string `mapstructure:"secret"`
		AccessTokenExpireMinutes  int    `mapstructure:"access_token_expire_minutes"`
		RefreshTokenExpireMinutes int    `mapstructure:"refresh_token_expire_minutes"`
	} `mapstructure:"jwt"`

	CORSOrigins string `mapstructure:"cors_origins"`
}

// Load reads config.yaml (if present) with env overrides.
func Load() Config {
	viper.SetDefault("listen_addr", ":8080")
	viper.SetDefault("env", "development")
	viper.SetDefault("static_dir", "./static")
	viper.SetDefault("database.path", "./upanishads.db")
	viper.SetDefault("jwt.access_token_expire_minutes", 30)
	viper.SetDefault("jwt.refresh_token_expire_minutes", 60*24*7)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	_ = viper.ReadInConfig()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// explicit bindings
	_ = viper.BindEnv("listen_addr", "LISTEN_ADDR")
	_ = viper.BindEnv("env", "ENV")
	_ = viper.BindEnv("static_dir", "STATIC_DIR")
	_ = viper.BindEnv("database.path", "DATABASE_PATH")
	_ = viper.BindEnv("jwt.secret", "JWT_SECRET")
	_ = viper.BindEnv("jwt.access_token_expire_minutes", "ACCESS_TOKEN_EXPIRE_MINUTES")
	_ = viper.BindEnv("jwt.refresh_token_expire_minutes", "REFRESH_TOKEN_EXPIRE_MINUTES")
	_ = viper.BindEnv("cors_origins", "CORS_ORIGINS")

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		panic("config error: " + err.Error())
	}
	if c.JWT.Secret == "" {
		panic("config error: jwt.secret/JWT_SECRET required")
	}
	return c
}

// Origins splits the comma-separated CORS origin list.
func (c Config) Origins() []string {
	if strings.TrimSpace(c.CORSOrigins) == "" {
		return nil
	}
	parts := strings.Split(c.CORSOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Production reports whether the process runs with production settings
// (gates the Secure flag on the refresh cookie).
func (c Config) Production() bool { return c.Env == "production" }

func (c Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.JWT.AccessTokenExpireMinutes) * time.Minute
}

func (c Config) RefreshTokenTTL() time.Duration {
	return time.Duration(c.JWT.RefreshTokenExpireMinutes) * time.Minute
}
