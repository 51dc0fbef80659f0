package spotlights

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/blu-networking/blu-backend/internal/members"
	"github.com/blu-networking/blu-backend/pkg/db"
	"github.com/blu-networking/blu-backend/pkg/db/models"
	pkgerrors "github.com/blu-networking/blu-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines member spotlight operations. Members read the current
// feature; the board curates the rotation.
type Service interface {
	Current(ctx context.Context) (*SpotlightView, error)
	List(ctx context.Context, limit, offset int) ([]models.MemberSpotlight, error)
	Create(ctx context.Context, params CreateParams) (*models.MemberSpotlight, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*models.MemberSpotlight, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	db *db.Client
}

// NewService wires spotlight dependencies.
func NewService(client *db.Client) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "database client required")
	}
	return &service{db: client}, nil
}

// SpotlightView joins the featured entry with the member it celebrates.
type SpotlightView struct {
	models.MemberSpotlight
	Member members.MemberView `json:"member"`
}

func (s *service) Current(ctx context.Context) (*SpotlightView, error) {
	spotlight, err := NewRepository(s.db.DB()).FindCurrent(ctx, time.Now().UTC())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no active spotlight")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load spotlight")
	}

	memberSvc, err := members.NewService(members.NewRepository(s.db.DB()))
	if err != nil {
		return nil, err
	}
	member, err := memberSvc.GetMember(ctx, nil, spotlight.UserID)
	if err != nil {
		return nil, err
	}

	return &SpotlightView{MemberSpotlight: *spotlight, Member: *member}, nil
}

func (s *service) List(ctx context.Context, limit, offset int) ([]models.MemberSpotlight, error) {
	rows, err := NewRepository(s.db.DB()).List(ctx, limit, offset)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list spotlights")
	}
	return rows, nil
}

// CreateParams describes a new spotlight entry.
type CreateParams struct {
	UserID        uuid.UUID
	Description   string
	Achievements  *string
	FeaturedUntil *time.Time
}

func (s *service) Create(ctx context.Context, params CreateParams) (*models.MemberSpotlight, error) {
	if params.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "spotlight member required")
	}
	description := strings.TrimSpace(params.Description)
	if description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "spotlight description required")
	}

	if _, err := members.NewRepository(s.db.DB()).FindByID(ctx, params.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load member")
	}

	spotlight := &models.MemberSpotlight{
		UserID:        params.UserID,
		Description:   description,
		Achievements:  params.Achievements,
		Active:        true,
		FeaturedUntil: params.FeaturedUntil,
	}
	if err := NewRepository(s.db.DB()).Create(ctx, spotlight); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create spotlight")
	}
	return spotlight, nil
}

// UpdateParams lists the editable spotlight fields.
type UpdateParams struct {
	Description   *string
	Achievements  *string
	Active        *bool
	FeaturedUntil *time.Time
}

func (s *service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*models.MemberSpotlight, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "spotlight id required")
	}
	if params.Description != nil && strings.TrimSpace(*params.Description) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "spotlight description cannot be empty")
	}

	updates := map[string]any{}
	if params.Description != nil {
		updates["description"] = strings.TrimSpace(*params.Description)
	}
	if params.Achievements != nil {
		updates["achievements"] = params.Achievements
	}
	if params.Active != nil {
		updates["active"] = *params.Active
	}
	if params.FeaturedUntil != nil {
		updates["featured_until"] = params.FeaturedUntil
	}

	spotlight, err := NewRepository(s.db.DB()).Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "spotlight not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update spotlight")
	}
	return spotlight, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "spotlight id required")
	}
	if err := NewRepository(s.db.DB()).Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "spotlight not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete spotlight")
	}
	return nil
}
