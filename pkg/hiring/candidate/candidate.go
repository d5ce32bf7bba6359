package candidate

import (
	"net/http"
	"time"

	"github.com/lib/pq"
	"github.com/remora-hq/staffdesk/pkg/errx"
	"github.com/remora-hq/staffdesk/pkg/kernel"
)

// ============================================================================
// Candidate Entity
// ============================================================================

// Status define los posibles estados de un candidato
type Status string

const (
	StatusDraft           Status = "DRAFT"
	StatusPendingApproval Status = "PENDING_APPROVAL"
	StatusActive          Status = "ACTIVE"
	StatusInactive        Status = "INACTIVE"
)

// AllStatuses lista todos los estados del ciclo de vida
var AllStatuses = []Status{
	StatusDraft,
	StatusPendingApproval,
	StatusActive,
	StatusInactive,
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

// Candidate es la entidad que representa a una persona propuesta para
// colocación. El estado y el creador gobiernan qué transiciones puede
// aplicar cada rol.
type Candidate struct {
	ID             string         `db:"id" json:"id"`
	FirstName      string         `db:"first_name" json:"first_name"`
	LastName       string         `db:"last_name" json:"last_name"`
	Email          string         `db:"email" json:"email"`
	Phone          string         `db:"phone" json:"phone"`
	Headline       string         `db:"headline" json:"headline"`
	Skills         pq.StringArray `db:"skills" json:"skills"`
	Roles          pq.StringArray `db:"roles" json:"roles"`
	Industries     pq.StringArray `db:"industries" json:"industries"`
	Certifications pq.StringArray `db:"certifications" json:"certifications"`
	Languages      pq.StringArray `db:"languages" json:"languages"`
	Notes          string         `db:"notes" json:"notes"`
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
func (c *Candidate) IsCreator(id kernel.ActorID) bool {
	return c.CreatorID == id
}

// IsDraft verifica si el candidato sigue en borrador
func (c *Candidate) IsDraft() bool {
	return c.Status == StatusDraft
}

// FullName retorna el nombre completo
func (c *Candidate) FullName() string {
	return c.FirstName + " " + c.LastName
}

// ============================================================================
// Service DTOs
// ============================================================================

// CreateCandidateRequest representa la petición para proponer un candidato
type CreateCandidateRequest struct {
	FirstName      string   `json:"first_name" validate:"required,min=2"`
	LastName       string   `json:"last_name" validate:"required,min=2"`
	Email          string   `json:"email" validate:"required,email"`
	Phone          string   `json:"phone"`
	Headline       string   `json:"headline" validate:"max=200"`
	Skills         []string `json:"skills,omitempty"`
	Roles          []string `json:"roles,omitempty"`
	Industries     []string `json:"industries,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	Languages      []string `json:"languages,omitempty"`
	Notes          string   `json:"notes"`
	Status         string   `json:"status,omitempty"`
}

// UpdateCandidateRequest representa la petición de actualización.
// Los campos nil se dejan como están.
type UpdateCandidateRequest struct {
	FirstName      *string  `json:"first_name,omitempty" validate:"omitempty,min=2"`
	LastName       *string  `json:"last_name,omitempty" validate:"omitempty,min=2"`
	Email          *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string  `json:"phone,omitempty"`
	Headline       *string  `json:"headline,omitempty" validate:"omitempty,max=200"`
	Skills         []string `json:"skills,omitempty"`
	Roles          []string `json:"roles,omitempty"`
	Industries     []string `json:"industries,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	Languages      []string `json:"languages,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
	Status         *string  `json:"status,omitempty"`
	Version        *int     `json:"version,omitempty"`
}

// CandidateListResponse para listas de candidatos
type CandidateListResponse struct {
	Candidates []Candidate `json:"candidates"`
	Total      int         `json:"total"`
}

// ============================================================================
// Error Registry - Errores específicos de Candidate
// ============================================================================

var ErrRegistry = errx.NewRegistry("CANDIDATE")

var (
	CodeCandidateNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Candidate not found")
	CodeNotRecordOwner    = ErrRegistry.Register("NOT_OWNER", errx.TypeAuthentication, http.StatusUnauthorized, "You do not own this candidate record")
	CodeInactiveAdminOnly = ErrRegistry.Register("INACTIVE_ADMIN_ONLY", errx.TypeAuthorization, http.StatusForbidden, "Only administrators can deactivate candidates")
	CodeEditLocked        = ErrRegistry.Register("EDIT_LOCKED", errx.TypeAuthorization, http.StatusForbidden, "Candidates can only be edited while in draft")
	CodeInvalidTransition = ErrRegistry.Register("INVALID_TRANSITION", errx.TypeAuthorization, http.StatusForbidden, "Invalid status transition")
	CodeDeleteAdminOnly   = ErrRegistry.Register("DELETE_ADMIN_ONLY", errx.TypeAuthorization, http.StatusForbidden, "Only administrators can delete candidates")
	CodeVersionConflict   = ErrRegistry.Register("VERSION_CONFLICT", errx.TypeConflict, http.StatusConflict, "Candidate was modified by another request, reload and retry")
	CodeInvalidStatus     = ErrRegistry.Register("INVALID_STATUS", errx.TypeValidation, http.StatusBadRequest, "Unknown candidate status")
)

func ErrCandidateNotFound() *errx.Error {
	return ErrRegistry.New(CodeCandidateNotFound)
}

func ErrNotRecordOwner() *errx.Error {
	return ErrRegistry.New(CodeNotRecordOwner)
}

func ErrInactiveAdminOnly() *errx.Error {
	return ErrRegistry.New(CodeInactiveAdminOnly)
}

func ErrEditLocked() *errx.Error {
	return ErrRegistry.New(CodeEditLocked)
}

func ErrInvalidTransition() *errx.Error {
	return ErrRegistry.New(CodeInvalidTransition)
}

func ErrDeleteAdminOnly() *errx.Error {
	return ErrRegistry.New(CodeDeleteAdminOnly)
}

func ErrVersionConflict() *errx.Error {
	return ErrRegistry.New(CodeVersionConflict)
}

func ErrInvalidStatus() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatus)
}
