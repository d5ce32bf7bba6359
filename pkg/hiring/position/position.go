package position

import (
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/lib/pq"
	"github.com/remora-hq/staffdesk/pkg/errx"
	"github.com/remora-hq/staffdesk/pkg/kernel"
)

// ============================================================================
// Position Entity
// ============================================================================

// Status define los posibles estados de una posición. CAMPAIGN_SENT y
// ARCHIVED son terminales salvo para el rol administrativo máximo.
type Status string

const (
	StatusDraft           Status = "DRAFT"
	StatusPendingApproval Status = "PENDING_APPROVAL"
	StatusActive          Status = "ACTIVE"
	StatusCampaignSent    Status = "CAMPAIGN_SENT"
	StatusArchived        Status = "ARCHIVED"
)

// AllStatuses lista todos los estados del ciclo de vida
var AllStatuses = []Status{
	StatusDraft,
	StatusPendingApproval,
	StatusActive,
	StatusCampaignSent,
	StatusArchived,
}

// ParseStatus valida y convierte un string a Status
func ParseStatus(s string) (Status, bool) {
	st := Status(s)
	for _, known := range AllStatuses {
		if st == known {
			return st, true
		}
	}
	return "", false
}

// IsFinal indica si el estado finaliza el registro
func (s Status) IsFinal() bool {
	return s == StatusCampaignSent || s == StatusArchived
}

// Position es la entidad que representa una vacante
type Position struct {
	ID             string         `db:"id" json:"id"`
	Reference      string         `db:"reference" json:"reference"`
	Title          string         `db:"title" json:"title"`
	Department     string         `db:"department" json:"department"`
	Location       string         `db:"location" json:"location"`
	Description    string         `db:"description" json:"description"`
	Skills         pq.StringArray `db:"skills" json:"skills"`
	Roles          pq.StringArray `db:"roles" json:"roles"`
	Industries     pq.StringArray `db:"industries" json:"industries"`
	Certifications pq.StringArray `db:"certifications" json:"certifications"`
	Languages      pq.StringArray `db:"languages" json:"languages"`
	SalaryMin      *int           `db:"salary_min" json:"salary_min,omitempty"`
	SalaryMax      *int           `db:"salary_max" json:"salary_max,omitempty"`
	Status         Status         `db:"status" json:"status"`
	CreatorID      kernel.ActorID `db:"creator_id" json:"creator_id"`
	Version        int            `db:"version" json:"version"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsCreator verifica si el actor creó este registro
func (p *Position) IsCreator(id kernel.ActorID) bool {
	return p.CreatorID == id
}

// IsFinalized indica si la posición quedó finalizada: editable solo por
// el rol administrativo máximo
func (p *Position) IsFinalized() bool {
	return p.Status.IsFinal()
}

// CanBeDeletedByCreator indica si el creador aún puede borrarla
func (p *Position) CanBeDeletedByCreator() bool {
	return p.Status == StatusDraft || p.Status == StatusPendingApproval
}

// GenerateReference genera un código de referencia POS-<YYYYMMDD>-<NNN>
func GenerateReference(now time.Time) string {
	return fmt.Sprintf("POS-%s-%03d", now.Format("20060102"), rand.Intn(1000))
}

// ============================================================================
// Service DTOs
// ============================================================================

// CreatePositionRequest representa la petición para publicar una posición
type CreatePositionRequest struct {
	Reference      string   `json:"reference,omitempty"`
	Title          string   `json:"title" validate:"required,min=3"`
	Department     string   `json:"department"`
	Location       string   `json:"location"`
	Description    string   `json:"description" validate:"max=5000"`
	Skills         []string `json:"skills,omitempty"`
	Roles          []string `json:"roles,omitempty"`
	Industries     []string `json:"industries,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	Languages      []string `json:"languages,omitempty"`
	SalaryMin      *int     `json:"salary_min,omitempty"`
	SalaryMax      *int     `json:"salary_max,omitempty"`
	Status         string   `json:"status,omitempty"`
}

// UpdatePositionRequest representa la petición de actualización
type UpdatePositionRequest struct {
	Title          *string  `json:"title,omitempty" validate:"omitempty,min=3"`
	Department     *string  `json:"department,omitempty"`
	Location       *string  `json:"location,omitempty"`
	Description    *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	Skills         []string `json:"skills,omitempty"`
	Roles          []string `json:"roles,omitempty"`
	Industries     []string `json:"industries,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	Languages      []string `json:"languages,omitempty"`
	SalaryMin      *int     `json:"salary_min,omitempty"`
	SalaryMax      *int     `json:"salary_max,omitempty"`
	Status         *string  `json:"status,omitempty"`
	Version        *int     `json:"version,omitempty"`
}

// PositionListResponse para listas de posiciones
type PositionListResponse struct {
	Positions []Position `json:"positions"`
	Total     int        `json:"total"`
}

// SweepResponse reporta el resultado del barrido de archivado
type SweepResponse struct {
	Archived int `json:"archived"`
}

// ============================================================================
// Error Registry - Errores específicos de Position
// ============================================================================

var ErrRegistry = errx.NewRegistry("POSITION")

var (
	CodePositionNotFound  = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Position not found")
	CodeNotRecordOwner    = ErrRegistry.Register("NOT_OWNER", errx.TypeAuthentication, http.StatusUnauthorized, "You do not own this position record")
	CodeFinalized         = ErrRegistry.Register("FINALIZED", errx.TypeAuthorization, http.StatusForbidden, "Position is finalized and cannot be edited")
	CodeEditLocked        = ErrRegistry.Register("EDIT_LOCKED", errx.TypeAuthorization, http.StatusForbidden, "Positions can only be edited while in draft")
	CodeInvalidTransition = ErrRegistry.Register("INVALID_TRANSITION", errx.TypeAuthorization, http.StatusForbidden, "Invalid status transition")
	CodeApproverOnly      = ErrRegistry.Register("APPROVER_ONLY", errx.TypeAuthorization, http.StatusForbidden, "Only gatekeepers can approve position campaigns")
	CodeDeleteLocked      = ErrRegistry.Register("DELETE_LOCKED", errx.TypeAuthorization, http.StatusForbidden, "Positions can only be deleted while in draft or pending approval")
	CodeVersionConflict   = ErrRegistry.Register("VERSION_CONFLICT", errx.TypeConflict, http.StatusConflict, "Position was modified by another request, reload and retry")
	CodeInvalidStatus     = ErrRegistry.Register("INVALID_STATUS", errx.TypeValidation, http.StatusBadRequest, "Unknown position status")
)

func ErrPositionNotFound() *errx.Error {
	return ErrRegistry.New(CodePositionNotFound)
}

func ErrNotRecordOwner() *errx.Error {
	return ErrRegistry.New(CodeNotRecordOwner)
}

func ErrFinalized() *errx.Error {
	return ErrRegistry.New(CodeFinalized)
}

func ErrEditLocked() *errx.Error {
	return ErrRegistry.New(CodeEditLocked)
}

func ErrInvalidTransition() *errx.Error {
	return ErrRegistry.New(CodeInvalidTransition)
}

func ErrApproverOnly() *errx.Error {
	return ErrRegistry.New(CodeApproverOnly)
}

func ErrDeleteLocked() *errx.Error {
	return ErrRegistry.New(CodeDeleteLocked)
}

func ErrVersionConflict() *errx.Error {
	return ErrRegistry.New(CodeVersionConflict)
}

func ErrInvalidStatus() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatus)
}
