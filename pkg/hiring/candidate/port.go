package candidate

import (
	"context"

	"github.com/remora-hq/staffdesk/pkg/kernel"
)

// CandidateRepository define el contrato para la persistencia de candidatos
type CandidateRepository interface {
	FindByID(ctx context.Context, id string) (*Candidate, error)
	FindAll(ctx context.Context) ([]*Candidate, error)
	// FindVisibleTo retorna los candidatos propios del actor más los activos
	FindVisibleTo(ctx context.Context, actorID kernel.ActorID) ([]*Candidate, error)
	// Save inserta o actualiza; las actualizaciones verifican la versión
	// cargada y fallan con conflicto si otro escritor ganó
	Save(ctx context.Context, c Candidate) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[Status]int, error)
}
