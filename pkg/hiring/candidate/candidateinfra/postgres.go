package candidateinfra

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/remora-hq/staffdesk/pkg/errx"
	"github.com/remora-hq/staffdesk/pkg/hiring/candidate"
	"github.com/remora-hq/staffdesk/pkg/kernel"
)

// PostgresCandidateRepository implementación de PostgreSQL para CandidateRepository
type PostgresCandidateRepository struct {
	db *sqlx.DB
}

// NewPostgresCandidateRepository crea una nueva instancia del repositorio de candidatos
func NewPostgresCandidateRepository(db *sqlx.DB) candidate.CandidateRepository {
	return &PostgresCandidateRepository{
		db: db,
	}
}

const candidateColumns = `
	id, first_name, last_name, email, phone, headline,
	skills, roles, industries, certifications, languages, notes,
	status, creator_id, version, created_at, updated_at`

// FindByID busca un candidato por ID
func (r *PostgresCandidateRepository) FindByID(ctx context.Context, id string) (*candidate.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`

	var c candidate.Candidate
	err := r.db.GetContext(ctx, &c, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, candidate.ErrCandidateNotFound().WithDetail("candidate_id", id)
		}
		return nil, errx.Wrap(err, "failed to find candidate by id", errx.TypeInternal).
			WithDetail("candidate_id", id)
	}

	return &c, nil
}

// FindAll busca todos los candidatos
func (r *PostgresCandidateRepository) FindAll(ctx context.Context) ([]*candidate.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates ORDER BY created_at DESC`

	var candidates []candidate.Candidate
	err := r.db.SelectContext(ctx, &candidates, query)
	if err != nil {
		return nil, errx.Wrap(err, "failed to find candidates", errx.TypeInternal)
	}

	return toPointers(candidates), nil
}

// FindVisibleTo busca los candidatos del actor más los activos
func (r *PostgresCandidateRepository) FindVisibleTo(ctx context.Context, actorID kernel.ActorID) ([]*candidate.Candidate, error) {
	query := `SELECT ` + candidateColumns + `
		FROM candidates
		WHERE creator_id = $1 OR status = $2
		ORDER BY created_at DESC`

	var candidates []candidate.Candidate
	err := r.db.SelectContext(ctx, &candidates, query, actorID.String(), candidate.StatusActive)
	if err != nil {
		return nil, errx.Wrap(err, "failed to find visible candidates", errx.TypeInternal).
			WithDetail("actor_id", actorID.String())
	}

	return toPointers(candidates), nil
}

// Save guarda o actualiza un candidato
func (r *PostgresCandidateRepository) Save(ctx context.Context, c candidate.Candidate) error {
	exists, err := r.candidateExists(ctx, c.ID)
	if err != nil {
		return errx.Wrap(err, "failed to check candidate existence", errx.TypeInternal)
	}

	if exists {
		return r.update(ctx, c)
	}
	return r.create(ctx, c)
}

// create crea un nuevo candidato
func (r *PostgresCandidateRepository) create(ctx context.Context, c candidate.Candidate) error {
	query := `
		INSERT INTO candidates (
			id, first_name, last_name, email, phone, headline,
			skills, roles, industries, certifications, languages, notes,
			status, creator_id, version, created_at, updated_at
		) VALUES (
			:id, :first_name, :last_name, :email, :phone, :headline,
			:skills, :roles, :industries, :certifications, :languages, :notes,
			:status, :creator_id, :version, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, c)
	if err != nil {
		return errx.Wrap(err, "failed to create candidate", errx.TypeInternal).
			WithDetail("candidate_id", c.ID)
	}

	return nil
}

// update actualiza un candidato existente verificando la versión cargada.
// Si otro escritor incrementó la versión, cero filas afectadas.
func (r *PostgresCandidateRepository) update(ctx context.Context, c candidate.Candidate) error {
	query := `
		UPDATE candidates SET
			first_name = :first_name,
			last_name = :last_name,
			email = :email,
			phone = :phone,
			headline = :headline,
			skills = :skills,
			roles = :roles,
			industries = :industries,
			certifications = :certifications,
			languages = :languages,
			notes = :notes,
			status = :status,
			version = version + 1,
			updated_at = :updated_at
		WHERE id = :id AND version = :version`

	result, err := r.db.NamedExecContext(ctx, query, c)
	if err != nil {
		return errx.Wrap(err, "failed to update candidate", errx.TypeInternal).
			WithDetail("candidate_id", c.ID)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}

	if rowsAffected == 0 {
		return candidate.ErrVersionConflict().
			WithDetail("candidate_id", c.ID).
			WithDetail("loaded_version", c.Version)
	}

	return nil
}

// Delete elimina un candidato
func (r *PostgresCandidateRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM candidates WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return errx.Wrap(err, "failed to delete candidate", errx.TypeInternal).
			WithDetail("candidate_id", id)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}

	if rowsAffected == 0 {
		return candidate.ErrCandidateNotFound().WithDetail("candidate_id", id)
	}

	return nil
}

// CountByStatus cuenta candidatos agrupados por estado
func (r *PostgresCandidateRepository) CountByStatus(ctx context.Context) (map[candidate.Status]int, error) {
	query := `SELECT status, COUNT(*) AS total FROM candidates GROUP BY status`

	rows := []struct {
		Status candidate.Status `db:"status"`
		Total  int              `db:"total"`
	}{}

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errx.Wrap(err, "failed to count candidates by status", errx.TypeInternal)
	}

	counts := make(map[candidate.Status]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}

	return counts, nil
}

// candidateExists verifica si un candidato existe por ID
func (r *PostgresCandidateRepository) candidateExists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM candidates WHERE id = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, id)
	if err != nil {
		return false, errx.Wrap(err, "failed to check candidate existence", errx.TypeInternal).
			WithDetail("candidate_id", id)
	}

	return exists, nil
}

func toPointers(candidates []candidate.Candidate) []*candidate.Candidate {
	result := make([]*candidate.Candidate, len(candidates))
	for i := range candidates {
		result[i] = &candidates[i]
	}
	return result
}
