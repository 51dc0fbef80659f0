package chapters

import (
	"context"
	"errors"
	"strings"

	"github.com/blu-networking/blu-backend/internal/members"
	"github.com/blu-networking/blu-backend/pkg/config"
	"github.com/blu-networking/blu-backend/pkg/db"
	"github.com/blu-networking/blu-backend/pkg/db/models"
	dbtypes "github.com/blu-networking/blu-backend/pkg/db/types"
	"github.com/blu-networking/blu-backend/pkg/enums"
	pkgerrors "github.com/blu-networking/blu-backend/pkg/errors"
	"github.com/blu-networking/blu-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const tempPasswordLength = 16

// Service defines chapter management operations.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Chapter, error)
	List(ctx context.Context) ([]models.Chapter, error)
	Create(ctx context.Context, params CreateParams) (*CreateResult, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*models.Chapter, error)
}

// ServiceParams packages the dependencies for the chapters service.
type ServiceParams struct {
	DB             *db.Client
	PasswordConfig config.PasswordConfig
}

type service struct {
	db          *db.Client
	passwordCfg config.PasswordConfig
}

// NewService wires chapter dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "database client required")
	}
	return &service{db: params.DB, passwordCfg: params.PasswordConfig}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Chapter, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "chapter id required")
	}
	chapter, err := NewRepository(s.db.DB()).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "chapter not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load chapter")
	}
	return chapter, nil
}

func (s *service) List(ctx context.Context) ([]models.Chapter, error) {
	rows, err := NewRepository(s.db.DB()).List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list chapters")
	}
	return rows, nil
}

// CreateParams describes a new chapter plus its founding administrator.
type CreateParams struct {
	Name           string
	Location       *string
	Description    *string
	ContactEmail   *string
	PrimaryColor   *string
	SecondaryColor *string
	Features       map[string]bool
	AdminEmail     string
	AdminFullName  string
}

// CreateResult returns the chapter together with the generated admin
// credentials. The temporary password is only ever surfaced here.
type CreateResult struct {
	Chapter      *models.Chapter `json:"chapter"`
	AdminID      uuid.UUID       `json:"admin_id"`
	AdminEmail   string          `json:"admin_email"`
	TempPassword string          `json:"temp_password"`
}

// Create provisions a chapter and its executive-board admin atomically. Either
// both rows land or neither does.
func (s *service) Create(ctx context.Context, params CreateParams) (*CreateResult, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "chapter name required")
	}
	adminEmail := strings.ToLower(strings.TrimSpace(params.AdminEmail))
	if adminEmail == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "admin email required")
	}
	adminName := strings.TrimSpace(params.AdminFullName)
	if adminName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "admin full name required")
	}

	tempPassword, err := security.GenerateTempPassword(tempPasswordLength)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate temp password")
	}
	passwordHash, err := security.HashPassword(tempPassword, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash temp password")
	}

	var result CreateResult
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		chapterRepo := NewRepository(tx)
		memberRepo := members.NewRepository(tx)

		if _, err := chapterRepo.FindByName(ctx, name); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "chapter name already in use")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check chapter name")
		}

		if _, err := memberRepo.FindByEmail(ctx, adminEmail); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "admin email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check admin email")
		}

		chapter := &models.Chapter{
			Name:           name,
			Location:       params.Location,
			Description:    params.Description,
			ContactEmail:   params.ContactEmail,
			PrimaryColor:   params.PrimaryColor,
			SecondaryColor: params.SecondaryColor,
			Features:       dbtypes.FeatureMap(params.Features),
		}
		if err := chapterRepo.Create(ctx, chapter); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create chapter")
		}

		admin := &models.User{
			Email:        adminEmail,
			PasswordHash: passwordHash,
			FullName:     adminName,
			UserLevel:    enums.UserLevelExecutiveBoard,
			ChapterID:    &chapter.ID,
			IsActive:     true,
		}
		if err := memberRepo.Create(ctx, admin); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create chapter admin")
		}

		result = CreateResult{
			Chapter:      chapter,
			AdminID:      admin.ID,
			AdminEmail:   admin.Email,
			TempPassword: tempPassword,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateParams lists the editable chapter fields.
type UpdateParams struct {
	Location       *string
	Description    *string
	ContactEmail   *string
	PrimaryColor   *string
	SecondaryColor *string
	Features       map[string]bool
}

func (s *service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*models.Chapter, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "chapter id required")
	}

	updates := map[string]any{}
	if params.Location != nil {
		updates["location"] = params.Location
	}
	if params.Description != nil {
		updates["description"] = params.Description
	}
	if params.ContactEmail != nil {
		updates["contact_email"] = params.ContactEmail
	}
	if params.PrimaryColor != nil {
		updates["primary_color"] = params.PrimaryColor
	}
	if params.SecondaryColor != nil {
		updates["secondary_color"] = params.SecondaryColor
	}
	if params.Features != nil {
		updates["features"] = dbtypes.FeatureMap(params.Features)
	}

	chapter, err := NewRepository(s.db.DB()).Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "chapter not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update chapter")
	}
	return chapter, nil
}
