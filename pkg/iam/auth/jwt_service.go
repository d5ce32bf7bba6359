package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/remora-hq/staffdesk/pkg/config"
	"github.com/remora-hq/staffdesk/pkg/iam"
	"github.com/remora-hq/staffdesk/pkg/iam/rbac"
	"github.com/remora-hq/staffdesk/pkg/kernel"
)

// TokenService define el contrato para emitir y validar tokens de sesión
type TokenService interface {
	GenerateAccessToken(authCtx *kernel.AuthContext) (string, error)
	ValidateAccessToken(tokenString string) (*kernel.AuthContext, error)
}

// JWTService implementación del TokenService usando JWT
type JWTService struct {
	secretKey      []byte
	accessTokenTTL time.Duration
	issuer         string
	audience       []string
}

// NewJWTServiceFromConfig crea una nueva instancia del servicio JWT
func NewJWTServiceFromConfig(cfg *config.JWTConfig) *JWTService {
	return &JWTService{
		secretKey:      []byte(cfg.SecretKey),
		accessTokenTTL: cfg.AccessTokenTTL,
		issuer:         cfg.Issuer,
		audience:       cfg.Audience,
	}
}

// Claims personalizados para JWT
type JWTClaims struct {
	ActorID      kernel.ActorID `json:"actor_id"`
	Email        string         `json:"email"`
	Name         string         `json:"name"`
	Role         rbac.Role      `json:"role"`
	IsGatekeeper bool           `json:"is_gatekeeper"`
	jwt.RegisteredClaims
}

// GenerateAccessToken genera un token de acceso JWT
func (j *JWTService) GenerateAccessToken(authCtx *kernel.AuthContext) (string, error) {
	now := time.Now()

	jwtClaims := JWTClaims{
		ActorID:      authCtx.ActorID,
		Email:        authCtx.Email,
		Name:         authCtx.Name,
		Role:         authCtx.Role,
		IsGatekeeper: authCtx.IsGatekeeper,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Subject:   authCtx.ActorID.String(),
			Audience:  j.audience,
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTokenTTL)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", iam.ErrInvalidToken().WithDetail("error", err.Error())
	}

	return tokenString, nil
}

// ValidateAccessToken valida y decodifica un token de acceso
func (j *JWTService) ValidateAccessToken(tokenString string) (*kernel.AuthContext, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (any, error) {
		// Verificar el método de firma
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secretKey, nil
	})

	if err != nil {
		return nil, iam.ErrInvalidToken().WithDetail("error", err.Error())
	}

	if !token.Valid {
		return nil, iam.ErrInvalidToken().WithDetail("error", "token is invalid")
	}

	jwtClaims, ok := token.Claims.(*JWTClaims)
	if !ok {
		return nil, iam.ErrInvalidToken().WithDetail("error", "invalid claims type")
	}

	return &kernel.AuthContext{
		ActorID:      jwtClaims.ActorID,
		Email:        jwtClaims.Email,
		Name:         jwtClaims.Name,
		Role:         jwtClaims.Role,
		IsGatekeeper: jwtClaims.IsGatekeeper,
	}, nil
}
