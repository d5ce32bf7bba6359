package auth

import (
	"context"
	"time"
)

// RateLimiter define el contrato del colaborador de rate limiting.
// La consistencia del contador es responsabilidad de la implementación;
// el guard solo consulta Allow.
type RateLimiter interface {
	// Allow retorna false si el identificador superó el límite dentro de
	// la ventana. Los errores de infraestructura no deben bloquear al
	// llamador: las implementaciones fallan abiertas.
	Allow(ctx context.Context, identifier string, limit int, window time.Duration) bool
}
