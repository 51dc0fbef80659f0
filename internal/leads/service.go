package leads

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/blu-networking/blu-backend/pkg/db"
	"github.com/blu-networking/blu-backend/pkg/db/models"
	"github.com/blu-networking/blu-backend/pkg/enums"
	pkgerrors "github.com/blu-networking/blu-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines sales lead operations. Every read and write is scoped to the
// owning member; a lead id belonging to another member reads as not found.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*models.Lead, error)
	Get(ctx context.Context, userID, leadID uuid.UUID) (*models.Lead, error)
	List(ctx context.Context, params ListParams) ([]models.Lead, error)
	Update(ctx context.Context, userID, leadID uuid.UUID, params UpdateParams) (*models.Lead, error)
	Delete(ctx context.Context, userID, leadID uuid.UUID) error
	Stats(ctx context.Context, userID uuid.UUID) (*StatsView, error)
}

type service struct {
	db *db.Client
}

// NewService wires lead dependencies.
func NewService(client *db.Client) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "database client required")
	}
	return &service{db: client}, nil
}

// CreateParams describes a new lead.
type CreateParams struct {
	UserID     uuid.UUID
	Name       string
	Company    *string
	Email      *string
	Phone      *string
	Notes      *string
	Type       enums.LeadType
	Status     enums.LeadStatus
	ValueCents int64
	FollowUpOn *time.Time
}

func (s *service) Create(ctx context.Context, params CreateParams) (*models.Lead, error) {
	if params.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "lead owner required")
	}
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "lead name required")
	}
	if !params.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid lead type")
	}
	status := params.Status
	if status == "" {
		status = enums.LeadStatusNew
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid lead status")
	}
	if params.ValueCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "lead value cannot be negative")
	}

	lead := &models.Lead{
		UserID:     params.UserID,
		Name:       name,
		Company:    params.Company,
		Email:      params.Email,
		Phone:      params.Phone,
		Notes:      params.Notes,
		Type:       params.Type,
		Status:     status,
		ValueCents: params.ValueCents,
		FollowUpOn: params.FollowUpOn,
	}
	if err := NewRepository(s.db.DB()).Create(ctx, lead); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create lead")
	}
	return lead, nil
}

// findOwned loads a lead and verifies ownership. Leads owned by other members
// are reported as not found rather than forbidden.
func (s *service) findOwned(ctx context.Context, userID, leadID uuid.UUID) (*models.Lead, error) {
	lead, err := NewRepository(s.db.DB()).FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "lead not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load lead")
	}
	if lead.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "lead not found")
	}
	return lead, nil
}

func (s *service) Get(ctx context.Context, userID, leadID uuid.UUID) (*models.Lead, error) {
	if userID == uuid.Nil || leadID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id and lead id required")
	}
	return s.findOwned(ctx, userID, leadID)
}

// ListParams bounds a lead listing.
type ListParams struct {
	UserID uuid.UUID
	Status string
	Type   string
	Limit  int
	Offset int
}

func (s *service) List(ctx context.Context, params ListParams) ([]models.Lead, error) {
	if params.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if params.Status != "" {
		if _, err := enums.ParseLeadStatus(params.Status); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid lead status filter")
		}
	}
	if params.Type != "" {
		if _, err := enums.ParseLeadType(params.Type); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid lead type filter")
		}
	}

	rows, err := NewRepository(s.db.DB()).ListByUser(ctx, listLeadsParams{
		UserID: params.UserID,
		Status: params.Status,
		Type:   params.Type,
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list leads")
	}
	return rows, nil
}

// UpdateParams lists the editable lead fields.
type UpdateParams struct {
	Name       *string
	Company    *string
	Email      *string
	Phone      *string
	Notes      *string
	Type       *enums.LeadType
	Status     *enums.LeadStatus
	ValueCents *int64
	FollowUpOn *time.Time
}

func (s *service) Update(ctx context.Context, userID, leadID uuid.UUID, params UpdateParams) (*models.Lead, error) {
	if userID == uuid.Nil || leadID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id and lead id required")
	}
	if params.Name != nil && strings.TrimSpace(*params.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "lead name cannot be empty")
	}
	if params.Type != nil && !params.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid lead type")
	}
	if params.Status != nil && !params.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid lead status")
	}
	if params.ValueCents != nil && *params.ValueCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "lead value cannot be negative")
	}

	if _, err := s.findOwned(ctx, userID, leadID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if params.Name != nil {
		updates["name"] = strings.TrimSpace(*params.Name)
	}
	if params.Company != nil {
		updates["company"] = params.Company
	}
	if params.Email != nil {
		updates["email"] = params.Email
	}
	if params.Phone != nil {
		updates["phone"] = params.Phone
	}
	if params.Notes != nil {
		updates["notes"] = params.Notes
	}
	if params.Type != nil {
		updates["type"] = *params.Type
	}
	if params.Status != nil {
		updates["status"] = *params.Status
	}
	if params.ValueCents != nil {
		updates["value_cents"] = *params.ValueCents
	}
	if params.FollowUpOn != nil {
		updates["follow_up_on"] = params.FollowUpOn
	}

	lead, err := NewRepository(s.db.DB()).Update(ctx, leadID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "lead not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update lead")
	}
	return lead, nil
}

func (s *service) Delete(ctx context.Context, userID, leadID uuid.UUID) error {
	if userID == uuid.Nil || leadID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id and lead id required")
	}
	if _, err := s.findOwned(ctx, userID, leadID); err != nil {
		return err
	}
	if err := NewRepository(s.db.DB()).Delete(ctx, leadID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "lead not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete lead")
	}
	return nil
}

// StatsView summarizes a member's pipeline. A member with no leads gets zero
// totals, not an error.
type StatsView struct {
	Totals
	ByStatus []StatusCount `json:"by_status"`
}

func (s *service) Stats(ctx context.Context, userID uuid.UUID) (*StatsView, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	repo := NewRepository(s.db.DB())
	totals, err := repo.AggregateForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate leads")
	}
	byStatus, err := repo.CountByStatus(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count leads by status")
	}
	if byStatus == nil {
		byStatus = []StatusCount{}
	}
	return &StatsView{Totals: *totals, ByStatus: byStatus}, nil
}
