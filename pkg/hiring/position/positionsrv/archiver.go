package positionsrv

import (
	"context"
	"time"

	"github.com/remora-hq/staffdesk/pkg/config"
	"github.com/remora-hq/staffdesk/pkg/logx"
)

// ArchivalSweeper servicio de archivado en background. Recorre las
// campañas enviadas y archiva las que superaron el tiempo de permanencia.
type ArchivalSweeper struct {
	positions *PositionService
	cfg       config.ArchivalConfig
}

// NewArchivalSweeper crea un nuevo servicio de archivado
func NewArchivalSweeper(positions *PositionService, cfg config.ArchivalConfig) *ArchivalSweeper {
	return &ArchivalSweeper{
		positions: positions,
		cfg:       cfg,
	}
}

// Start inicia el barrido periódico. Bloquea hasta que el contexto se
// cancele; pensado para correr en su propia goroutine.
func (s *ArchivalSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	// Ejecutar barrido inicial
	s.runSweep(ctx)

	for {
		select {
		case <-ctx.Done():
			logx.Info("Archival sweeper stopped")
			return
		case <-ticker.C:
			s.runSweep(ctx)
		}
	}
}

// runSweep ejecuta una pasada del barrido
func (s *ArchivalSweeper) runSweep(ctx context.Context) {
	if _, err := s.positions.ArchiveStaleCampaigns(ctx, s.cfg.DwellTime); err != nil {
		logx.Errorf("Error archiving stale campaigns: %v", err)
	}
}
