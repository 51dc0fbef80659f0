package members

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/blu-networking/blu-backend/pkg/db/models"
	"github.com/blu-networking/blu-backend/pkg/enums"
	pkgerrors "github.com/blu-networking/blu-backend/pkg/errors"
	"github.com/blu-networking/blu-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines member directory and profile operations.
type Service interface {
	Directory(ctx context.Context, params DirectoryParams) (*DirectoryResult, error)
	GetMember(ctx context.Context, actorChapterID *uuid.UUID, memberID uuid.UUID) (*MemberView, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, params UpdateProfileParams) (*models.User, error)
	AdminList(ctx context.Context, params AdminListParams) (*AdminListResult, error)
	SetLevel(ctx context.Context, memberID uuid.UUID, level enums.UserLevel) error
	SetActive(ctx context.Context, memberID uuid.UUID, active bool) error
}

type repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, params listMembersParams) ([]models.User, *pagination.Cursor, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.User, error)
	SetLevel(ctx context.Context, id uuid.UUID, level enums.UserLevel) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type service struct {
	repo repository
}

// NewService wires member dependencies.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "members repository required")
	}
	return &service{repo: repo}, nil
}

// MemberView is the directory-safe projection of a member. Credential and
// account-state fields never appear here.
type MemberView struct {
	ID              uuid.UUID  `json:"id"`
	FullName        string     `json:"full_name"`
	Company         *string    `json:"company,omitempty"`
	Title           *string    `json:"title,omitempty"`
	Bio             *string    `json:"bio,omitempty"`
	Industry        *string    `json:"industry,omitempty"`
	Expertise       *string    `json:"expertise,omitempty"`
	ProfileImageURL *string    `json:"profile_image_url,omitempty"`
	Email           string     `json:"email"`
	Phone           *string    `json:"phone,omitempty"`
	ChapterID       *uuid.UUID `json:"chapter_id,omitempty"`
	JoinedAt        time.Time  `json:"joined_at"`
}

func toMemberView(user models.User) MemberView {
	return MemberView{
		ID:              user.ID,
		FullName:        user.FullName,
		Company:         user.Company,
		Title:           user.Title,
		Bio:             user.Bio,
		Industry:        user.Industry,
		Expertise:       user.Expertise,
		ProfileImageURL: user.ProfileImageURL,
		Email:           user.Email,
		Phone:           user.Phone,
		ChapterID:       user.ChapterID,
		JoinedAt:        user.JoinedAt,
	}
}

// DirectoryParams scopes a directory listing to the actor's chapter.
type DirectoryParams struct {
	ChapterID *uuid.UUID
	Search    string
	Industry  string
	Limit     int
	Cursor    string
}

// DirectoryResult wraps directory entries and the cursor for the next page.
type DirectoryResult struct {
	Items  []MemberView `json:"items"`
	Cursor string       `json:"cursor"`
}

func (s *service) Directory(ctx context.Context, params DirectoryParams) (*DirectoryResult, error) {
	query := listMembersParams{
		ChapterID: params.ChapterID,
		Search:    params.Search,
		Industry:  params.Industry,
		Limit:     pagination.LimitWithBuffer(params.Limit),
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list members")
	}

	items := make([]MemberView, 0, len(rows))
	for _, row := range rows {
		items = append(items, toMemberView(row))
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}

	return &DirectoryResult{Items: items, Cursor: cursor}, nil
}

func (s *service) GetMember(ctx context.Context, actorChapterID *uuid.UUID, memberID uuid.UUID) (*MemberView, error) {
	if memberID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "member id required")
	}

	user, err := s.repo.FindByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load member")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
	}

	// directory visibility stays within the actor's chapter
	if actorChapterID != nil {
		if user.ChapterID == nil || *user.ChapterID != *actorChapterID {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
	}

	view := toMemberView(*user)
	return &view, nil
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	return user, nil
}

// UpdateProfileParams lists every profile field a member may change about
// themselves. Anything outside this set (id, email, credential, level,
// chapter, join date) cannot be reached through profile updates.
type UpdateProfileParams struct {
	FullName        *string
	Company         *string
	Title           *string
	Bio             *string
	Industry        *string
	Expertise       *string
	ProfileImageURL *string
	Phone           *string
}

func (p UpdateProfileParams) toUpdates() map[string]any {
	updates := map[string]any{}
	if p.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*p.FullName)
	}
	if p.Company != nil {
		updates["company"] = p.Company
	}
	if p.Title != nil {
		updates["title"] = p.Title
	}
	if p.Bio != nil {
		updates["bio"] = p.Bio
	}
	if p.Industry != nil {
		updates["industry"] = p.Industry
	}
	if p.Expertise != nil {
		updates["expertise"] = p.Expertise
	}
	if p.ProfileImageURL != nil {
		updates["profile_image_url"] = p.ProfileImageURL
	}
	if p.Phone != nil {
		updates["phone"] = p.Phone
	}
	return updates
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, params UpdateProfileParams) (*models.User, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if params.FullName != nil && strings.TrimSpace(*params.FullName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name cannot be empty")
	}

	user, err := s.repo.UpdateProfile(ctx, userID, params.toUpdates())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
	}
	return user, nil
}

// AdminListParams configures the privileged member listing.
type AdminListParams struct {
	ChapterID *uuid.UUID
	Search    string
	Limit     int
	Cursor    string
}

// AdminListResult wraps full member rows for board views.
type AdminListResult struct {
	Items  []models.User `json:"items"`
	Cursor string        `json:"cursor"`
}

func (s *service) AdminList(ctx context.Context, params AdminListParams) (*AdminListResult, error) {
	query := listMembersParams{
		ChapterID:  params.ChapterID,
		Search:     params.Search,
		IncludeAll: true,
		Limit:      pagination.LimitWithBuffer(params.Limit),
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list members")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}

	return &AdminListResult{Items: rows, Cursor: cursor}, nil
}

func (s *service) SetLevel(ctx context.Context, memberID uuid.UUID, level enums.UserLevel) error {
	if memberID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "member id required")
	}
	if !level.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid user level")
	}

	if err := s.repo.SetLevel(ctx, memberID, level); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set member level")
	}
	return nil
}

func (s *service) SetActive(ctx context.Context, memberID uuid.UUID, active bool) error {
	if memberID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "member id required")
	}

	if err := s.repo.SetActive(ctx, memberID, active); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set member active")
	}
	return nil
}
