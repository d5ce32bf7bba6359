package actorinfra

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/remora-hq/staffdesk/pkg/errx"
	"github.com/remora-hq/staffdesk/pkg/iam/actor"
	"github.com/remora-hq/staffdesk/pkg/kernel"
)

// PostgresActorRepository implementación de PostgreSQL para ActorRepository
type PostgresActorRepository struct {
	db *sqlx.DB
}

// NewPostgresActorRepository crea una nueva instancia del repositorio de actores
func NewPostgresActorRepository(db *sqlx.DB) actor.ActorRepository {
	return &PostgresActorRepository{
		db: db,
	}
}

// FindByID busca un actor por ID
func (r *PostgresActorRepository) FindByID(ctx context.Context, id kernel.ActorID) (*actor.Actor, error) {
	query := `
		SELECT
			id, email, name, password_hash, role, is_gatekeeper, active,
			last_login_at, created_at, updated_at
		FROM actors
		WHERE id = $1`

	var a actor.Actor
	err := r.db.GetContext(ctx, &a, query, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, actor.ErrActorNotFound().WithDetail("actor_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to find actor by id", errx.TypeInternal).
			WithDetail("actor_id", id.String())
	}

	return &a, nil
}

// FindByEmail busca un actor por email
func (r *PostgresActorRepository) FindByEmail(ctx context.Context, email string) (*actor.Actor, error) {
	query := `
		SELECT
			id, email, name, password_hash, role, is_gatekeeper, active,
			last_login_at, created_at, updated_at
		FROM actors
		WHERE email = $1`

	var a actor.Actor
	err := r.db.GetContext(ctx, &a, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, actor.ErrActorNotFound().WithDetail("email", email)
		}
		return nil, errx.Wrap(err, "failed to find actor by email", errx.TypeInternal).
			WithDetail("email", email)
	}

	return &a, nil
}

// FindAll busca todos los actores
func (r *PostgresActorRepository) FindAll(ctx context.Context) ([]*actor.Actor, error) {
	query := `
		SELECT
			id, email, name, password_hash, role, is_gatekeeper, active,
			last_login_at, created_at, updated_at
		FROM actors
		ORDER BY name ASC`

	var actors []actor.Actor
	err := r.db.SelectContext(ctx, &actors, query)
	if err != nil {
		return nil, errx.Wrap(err, "failed to find actors", errx.TypeInternal)
	}

	// Convertir a slice de punteros
	result := make([]*actor.Actor, len(actors))
	for i := range actors {
		result[i] = &actors[i]
	}

	return result, nil
}

// Save guarda o actualiza un actor
func (r *PostgresActorRepository) Save(ctx context.Context, a actor.Actor) error {
	exists, err := r.actorExists(ctx, a.ID)
	if err != nil {
		return errx.Wrap(err, "failed to check actor existence", errx.TypeInternal)
	}

	if exists {
		return r.update(ctx, a)
	}
	return r.create(ctx, a)
}

// create crea un nuevo actor
func (r *PostgresActorRepository) create(ctx context.Context, a actor.Actor) error {
	query := `
		INSERT INTO actors (
			id, email, name, password_hash, role, is_gatekeeper, active,
			last_login_at, created_at, updated_at
		) VALUES (
			:id, :email, :name, :password_hash, :role, :is_gatekeeper, :active,
			:last_login_at, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, a)
	if err != nil {
		// Verificar violación de constraint de email único
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" && pqErr.Constraint == "actors_email_key" {
				return actor.ErrActorAlreadyExists().WithDetail("email", a.Email)
			}
		}
		return errx.Wrap(err, "failed to create actor", errx.TypeInternal).
			WithDetail("actor_id", a.ID.String()).
			WithDetail("email", a.Email)
	}

	return nil
}

// update actualiza un actor existente
func (r *PostgresActorRepository) update(ctx context.Context, a actor.Actor) error {
	query := `
		UPDATE actors SET
			email = :email,
			name = :name,
			password_hash = :password_hash,
			role = :role,
			is_gatekeeper = :is_gatekeeper,
			active = :active,
			last_login_at = :last_login_at,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, a)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" && pqErr.Constraint == "actors_email_key" {
				return actor.ErrActorAlreadyExists().WithDetail("email", a.Email)
			}
		}
		return errx.Wrap(err, "failed to update actor", errx.TypeInternal).
			WithDetail("actor_id", a.ID.String())
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}

	if rowsAffected == 0 {
		return actor.ErrActorNotFound().WithDetail("actor_id", a.ID.String())
	}

	return nil
}

// ExistsByEmail verifica si existe un actor con el email dado
func (r *PostgresActorRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM actors WHERE email = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, email)
	if err != nil {
		return false, errx.Wrap(err, "failed to check actor existence by email", errx.TypeInternal).
			WithDetail("email", email)
	}

	return exists, nil
}

// Count cuenta los actores registrados
func (r *PostgresActorRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM actors`

	var count int
	err := r.db.GetContext(ctx, &count, query)
	if err != nil {
		return 0, errx.Wrap(err, "failed to count actors", errx.TypeInternal)
	}

	return count, nil
}

// actorExists verifica si un actor existe por ID
func (r *PostgresActorRepository) actorExists(ctx context.Context, id kernel.ActorID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM actors WHERE id = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, id.String())
	if err != nil {
		return false, errx.Wrap(err, "failed to check actor existence", errx.TypeInternal).
			WithDetail("actor_id", id.String())
	}

	return exists, nil
}
