package positioninfra

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/remora-hq/staffdesk/pkg/errx"
	"github.com/remora-hq/staffdesk/pkg/hiring/position"
	"github.com/remora-hq/staffdesk/pkg/kernel"
)

// PostgresPositionRepository implementación de PostgreSQL para PositionRepository
type PostgresPositionRepository struct {
	db *sqlx.DB
}

// NewPostgresPositionRepository crea una nueva instancia del repositorio de posiciones
func NewPostgresPositionRepository(db *sqlx.DB) position.PositionRepository {
	return &PostgresPositionRepository{
		db: db,
	}
}

const positionColumns = `
	id, reference, title, department, location, description,
	skills, roles, industries, certifications, languages,
	salary_min, salary_max, status, creator_id, version, created_at, updated_at`

// FindByID busca una posición por ID
func (r *PostgresPositionRepository) FindByID(ctx context.Context, id string) (*position.Position, error) {
	query := `SELECT ` + positionColumns + ` FROM positions WHERE id = $1`

	var p position.Position
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, position.ErrPositionNotFound().WithDetail("position_id", id)
		}
		return nil, errx.Wrap(err, "failed to find position by id", errx.TypeInternal).
			WithDetail("position_id", id)
	}

	return &p, nil
}

// FindAll busca todas las posiciones
func (r *PostgresPositionRepository) FindAll(ctx context.Context) ([]*position.Position, error) {
	query := `SELECT ` + positionColumns + ` FROM positions ORDER BY created_at DESC`

	var positions []position.Position
	err := r.db.SelectContext(ctx, &positions, query)
	if err != nil {
		return nil, errx.Wrap(err, "failed to find positions", errx.TypeInternal)
	}

	return toPointers(positions), nil
}

// FindVisibleTo busca las posiciones del actor más las publicadas
func (r *PostgresPositionRepository) FindVisibleTo(ctx context.Context, actorID kernel.ActorID) ([]*position.Position, error) {
	query := `SELECT ` + positionColumns + `
		FROM positions
		WHERE creator_id = $1 OR status IN ($2, $3)
		ORDER BY created_at DESC`

	var positions []position.Position
	err := r.db.SelectContext(ctx, &positions, query, actorID.String(), position.StatusActive, position.StatusCampaignSent)
	if err != nil {
		return nil, errx.Wrap(err, "failed to find visible positions", errx.TypeInternal).
			WithDetail("actor_id", actorID.String())
	}

	return toPointers(positions), nil
}

// Save guarda o actualiza una posición
func (r *PostgresPositionRepository) Save(ctx context.Context, p position.Position) error {
	exists, err := r.positionExists(ctx, p.ID)
	if err != nil {
		return errx.Wrap(err, "failed to check position existence", errx.TypeInternal)
	}

	if exists {
		return r.update(ctx, p)
	}
	return r.create(ctx, p)
}

// create crea una nueva posición
func (r *PostgresPositionRepository) create(ctx context.Context, p position.Position) error {
	query := `
		INSERT INTO positions (
			id, reference, title, department, location, description,
			skills, roles, industries, certifications, languages,
			salary_min, salary_max, status, creator_id, version, created_at, updated_at
		) VALUES (
			:id, :reference, :title, :department, :location, :description,
			:skills, :roles, :industries, :certifications, :languages,
			:salary_min, :salary_max, :status, :creator_id, :version, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, p)
	if err != nil {
		return errx.Wrap(err, "failed to create position", errx.TypeInternal).
			WithDetail("position_id", p.ID)
	}

	return nil
}

// update actualiza una posición existente verificando la versión cargada.
// Si otro escritor incrementó la versión, cero filas afectadas.
func (r *PostgresPositionRepository) update(ctx context.Context, p position.Position) error {
	query := `
		UPDATE positions SET
			title = :title,
			department = :department,
			location = :location,
			description = :description,
			skills = :skills,
			roles = :roles,
			industries = :industries,
			certifications = :certifications,
			languages = :languages,
			salary_min = :salary_min,
			salary_max = :salary_max,
			status = :status,
			version = version + 1,
			updated_at = :updated_at
		WHERE id = :id AND version = :version`

	result, err := r.db.NamedExecContext(ctx, query, p)
	if err != nil {
		return errx.Wrap(err, "failed to update position", errx.TypeInternal).
			WithDetail("position_id", p.ID)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}

	if rowsAffected == 0 {
		return position.ErrVersionConflict().
			WithDetail("position_id", p.ID).
			WithDetail("loaded_version", p.Version)
	}

	return nil
}

// Delete elimina una posición
func (r *PostgresPositionRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM positions WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return errx.Wrap(err, "failed to delete position", errx.TypeInternal).
			WithDetail("position_id", id)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}

	if rowsAffected == 0 {
		return position.ErrPositionNotFound().WithDetail("position_id", id)
	}

	return nil
}

// ArchiveStaleCampaigns archiva en bloque las campañas vencidas. El filtro
// por estado hace la operación idempotente: una fila ya archivada no
// vuelve a calificar.
func (r *PostgresPositionRepository) ArchiveStaleCampaigns(ctx context.Context, cutoff time.Time) (int, error) {
	query := `
		UPDATE positions SET
			status = $1,
			version = version + 1,
			updated_at = NOW()
		WHERE status = $2 AND updated_at < $3`

	result, err := r.db.ExecContext(ctx, query, position.StatusArchived, position.StatusCampaignSent, cutoff)
	if err != nil {
		return 0, errx.Wrap(err, "failed to archive stale campaigns", errx.TypeInternal)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}

	return int(rowsAffected), nil
}

// CountByStatus cuenta posiciones agrupadas por estado
func (r *PostgresPositionRepository) CountByStatus(ctx context.Context) (map[position.Status]int, error) {
	query := `SELECT status, COUNT(*) AS total FROM positions GROUP BY status`

	rows := []struct {
		Status position.Status `db:"status"`
		Total  int             `db:"total"`
	}{}

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errx.Wrap(err, "failed to count positions by status", errx.TypeInternal)
	}

	counts := make(map[position.Status]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}

	return counts, nil
}

// positionExists verifica si una posición existe por ID
func (r *PostgresPositionRepository) positionExists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM positions WHERE id = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, id)
	if err != nil {
		return false, errx.Wrap(err, "failed to check position existence", errx.TypeInternal).
			WithDetail("position_id", id)
	}

	return exists, nil
}

func toPointers(positions []position.Position) []*position.Position {
	result := make([]*position.Position, len(positions))
	for i := range positions {
		result[i] = &positions[i]
	}
	return result
}
