package position

import (
	"context"
	"time"

	"github.com/remora-hq/staffdesk/pkg/kernel"
)

// PositionRepository define el contrato para la persistencia de posiciones
type PositionRepository interface {
	FindByID(ctx context.Context, id string) (*Position, error)
	FindAll(ctx context.Context) ([]*Position, error)
	// FindVisibleTo retorna las posiciones propias del actor más las
	// publicadas (ACTIVE y CAMPAIGN_SENT)
	FindVisibleTo(ctx context.Context, actorID kernel.ActorID) ([]*Position, error)
	// Save inserta o actualiza; las actualizaciones verifican la versión
	// cargada y fallan con conflicto si otro escritor ganó
	Save(ctx context.Context, p Position) error
	Delete(ctx context.Context, id string) error
	// ArchiveStaleCampaigns archiva en bloque las posiciones en
	// CAMPAIGN_SENT cuya última modificación es anterior al corte.
	// Retorna cuántas filas cambió; repetirlo no produce cambios nuevos
	ArchiveStaleCampaigns(ctx context.Context, cutoff time.Time) (int, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)
}
