package actor

import (
	"context"

	"github.com/remora-hq/staffdesk/pkg/kernel"
)

// ActorRepository define el contrato para la persistencia de actores
type ActorRepository interface {
	FindByID(ctx context.Context, id kernel.ActorID) (*Actor, error)
	FindByEmail(ctx context.Context, email string) (*Actor, error)
	FindAll(ctx context.Context) ([]*Actor, error)
	Save(ctx context.Context, a Actor) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// PasswordService define el contrato para el manejo de contraseñas
type PasswordService interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hashedPassword, password string) bool
}
