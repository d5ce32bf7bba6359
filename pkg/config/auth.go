package config

import "time"

type AuthConfig struct {
	JWT       JWTConfig
	Password  PasswordConfig
	Cookie    CookieConfig
	RateLimit RateLimitConfig
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
	Issuer         string
	Audience       []string
}

type PasswordConfig struct {
	BcryptCost int
}

type CookieConfig struct {
	AccessTokenName string
	Domain          string
	Path            string
	Secure          bool
	HTTPOnly        bool
	SameSite        string
}

type RateLimitConfig struct {
	Enabled     bool
	MaxRequests int
	Window      time.Duration
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		JWT: JWTConfig{
			SecretKey:      getEnv("JWT_SECRET_KEY", ""),
			AccessTokenTTL: getEnvDuration("JWT_ACCESS_TOKEN_TTL", 8*time.Hour),
			Issuer:         getEnv("JWT_ISSUER", "staffdesk"),
			Audience:       getEnvStringSlice("JWT_AUDIENCE", []string{"staffdesk-api"}),
		},
		Password: PasswordConfig{
			BcryptCost: getEnvInt("BCRYPT_COST", 10),
		},
		Cookie: CookieConfig{
			AccessTokenName: getEnv("COOKIE_ACCESS_TOKEN_NAME", "access_token"),
			Domain:          getEnv("COOKIE_DOMAIN", ""),
			Path:            getEnv("COOKIE_PATH", "/"),
			Secure:          getEnvBool("COOKIE_SECURE", false),
			HTTPOnly:        getEnvBool("COOKIE_HTTP_ONLY", true),
			SameSite:        getEnv("COOKIE_SAME_SITE", "Lax"),
		},
		RateLimit: RateLimitConfig{
			Enabled:     getEnvBool("RATE_LIMIT_ENABLED", true),
			MaxRequests: getEnvInt("RATE_LIMIT_MAX_REQUESTS", 60),
			Window:      getEnvDuration("RATE_LIMIT_WINDOW", 1*time.Minute),
		},
	}
}
