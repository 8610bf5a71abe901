package app

import (
	"time"

	"github.com/campuscore/campuscore-backend/internal/platform/envutil"
	"github.com/campuscore/campuscore-backend/internal/platform/logger"
)

type Config struct {
	Port                 string
	JWTSecretKey         string
	AccessTokenTTL       time.Duration
	PendingLoginTTL      time.Duration
	RequestTimeout       time.Duration
	HealthSampleInterval time.Duration
	TwoFactorIssuer      string
	SecureCookies        bool
}

func LoadConfig(log *logger.Logger) Config {
	log.Info("Loading configuration...")
	return Config{
		Port:                 envutil.String("PORT", "8080"),
		JWTSecretKey:         envutil.String("JWT_SECRET_KEY", ""),
		AccessTokenTTL:       envutil.Seconds("ACCESS_TOKEN_TTL", time.Hour),
		PendingLoginTTL:      envutil.Seconds("PENDING_LOGIN_TTL", 5*time.Minute),
		RequestTimeout:       envutil.Seconds("REQUEST_TIMEOUT", 30*time.Second),
		HealthSampleInterval: envutil.Seconds("HEALTH_SAMPLE_INTERVAL", 5*time.Minute),
		TwoFactorIssuer:      envutil.String("TWO_FACTOR_ISSUER", "CampusCore"),
		SecureCookies:        envutil.String("SECURE_COOKIES", "false") == "true",
	}
}
