package utils

import (
	"os"
	"strconv"
	"time"
)

type ServerConfig struct {
	Addr      string
	CSVPath   string
	StaticDir string
}

func LoadServerConfig() ServerConfig {
	addr := os.Getenv("RECEPTARI_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	csvPath := os.Getenv("RECEPTARI_CSV_PATH")
	if csvPath == "" {
		csvPath = "recetas_traducidas.csv"
	}

	staticDir := os.Getenv("RECEPTARI_STATIC_DIR")
	if staticDir == "" {
		staticDir = "static"
	}

	return ServerConfig{
		Addr:      addr,
		CSVPath:   csvPath,
		StaticDir: staticDir,
	}
}

type AdminConfig struct {
	JWTSecret    string
	JWTIssuer    string
	JWTDuration  time.Duration
	PasswordHash string
}

// Enabled reports whether the admin surface can be mounted. Without a
// bcrypt password hash there is no way to issue tokens, so the routes
// stay off.
func (c AdminConfig) Enabled() bool {
	return c.PasswordHash != ""
}

func LoadAdminConfig() AdminConfig {
	secret := os.Getenv("RECEPTARI_JWT_SECRET")
	if secret == "" {
		// dev default (change for demo / production)
		secret = "dev-secret-change-me"
	}

	issuer := os.Getenv("RECEPTARI_JWT_ISSUER")
	if issuer == "" {
		issuer = "receptari"
	}

	duration := 24 * time.Hour
	if ttl := os.Getenv("RECEPTARI_JWT_TTL_HOURS"); ttl != "" {
		if h, err := strconv.Atoi(ttl); err == nil && h > 0 {
			duration = time.Duration(h) * time.Hour
		}
	}

	return AdminConfig{
		JWTSecret:    secret,
		JWTIssuer:    issuer,
		JWTDuration:  duration,
		PasswordHash: os.Getenv("RECEPTARI_ADMIN_PASSWORD_HASH"),
	}
}
