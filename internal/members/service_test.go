package members

import (
	"context"
	"testing"
	"time"

	"github.com/blu-networking/blu-backend/pkg/db/models"
	"github.com/blu-networking/blu-backend/pkg/enums"
	pkgerrors "github.com/blu-networking/blu-backend/pkg/errors"
	paginationpkg "github.com/blu-networking/blu-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeRepository struct {
	findByIDFn      func(ctx context.Context, id uuid.UUID) (*models.User, error)
	listFn          func(ctx context.Context, params listMembersParams) ([]models.User, *paginationpkg.Cursor, error)
	updateProfileFn func(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.User, error)
	setLevelFn      func(ctx context.Context, id uuid.UUID, level enums.UserLevel) error
	setActiveFn     func(ctx context.Context, id uuid.UUID, active bool) error
}

func (f *fakeRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) List(ctx context.Context, params listMembersParams) ([]models.User, *paginationpkg.Cursor, error) {
	if f.listFn != nil {
		return f.listFn(ctx, params)
	}
	return nil, nil, nil
}

func (f *fakeRepository) UpdateProfile(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.User, error) {
	if f.updateProfileFn != nil {
		return f.updateProfileFn(ctx, id, updates)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) SetLevel(ctx context.Context, id uuid.UUID, level enums.UserLevel) error {
	if f.setLevelFn != nil {
		return f.setLevelFn(ctx, id, level)
	}
	return nil
}

func (f *fakeRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if f.setActiveFn != nil {
		return f.setActiveFn(ctx, id, active)
	}
	return nil
}

func newServiceWithRepo(repo repository) Service {
	svc, _ := NewService(repo)
	return svc
}

func activeMember(chapterID *uuid.UUID) *models.User {
	return &models.User{
		ID:           uuid.New(),
		Email:        "member@example.com",
		PasswordHash: "hash",
		FullName:     "Jordan Member",
		UserLevel:    enums.UserLevelMember,
		ChapterID:    chapterID,
		IsActive:     true,
		JoinedAt:     time.Now().Add(-24 * time.Hour),
	}
}

func TestDirectoryScopesToChapter(t *testing.T) {
	chapterID := uuid.New()
	var captured listMembersParams
	repo := &fakeRepository{
		listFn: func(ctx context.Context, params listMembersParams) ([]models.User, *paginationpkg.Cursor, error) {
			captured = params
			return []models.User{*activeMember(&chapterID)}, nil, nil
		},
	}

	result, err := newServiceWithRepo(repo).Directory(context.Background(), DirectoryParams{ChapterID: &chapterID})
	if err != nil {
		t.Fatalf("directory: %v", err)
	}

	if captured.ChapterID == nil || *captured.ChapterID != chapterID {
		t.Fatalf("expected chapter filter %s, got %v", chapterID, captured.ChapterID)
	}
	if captured.IncludeAll {
		t.Fatal("directory should only list active members")
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected one entry, got %d", len(result.Items))
	}
}

func TestDirectoryReturnsNextCursor(t *testing.T) {
	next := &paginationpkg.Cursor{CreatedAt: time.Now(), ID: uuid.New()}
	repo := &fakeRepository{
		listFn: func(ctx context.Context, params listMembersParams) ([]models.User, *paginationpkg.Cursor, error) {
			return []models.User{*activeMember(nil)}, next, nil
		},
	}

	result, err := newServiceWithRepo(repo).Directory(context.Background(), DirectoryParams{})
	if err != nil {
		t.Fatalf("directory: %v", err)
	}
	if result.Cursor == "" {
		t.Fatal("expected encoded cursor for next page")
	}
	parsed, err := paginationpkg.ParseCursor(result.Cursor)
	if err != nil {
		t.Fatalf("parse cursor: %v", err)
	}
	if parsed.ID != next.ID {
		t.Fatalf("cursor id mismatch: %s vs %s", parsed.ID, next.ID)
	}
}

func TestDirectoryRejectsBadCursor(t *testing.T) {
	svc := newServiceWithRepo(&fakeRepository{})
	_, err := svc.Directory(context.Background(), DirectoryParams{Cursor: "!!not-base64!!"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetMemberHidesOtherChapters(t *testing.T) {
	actorChapter := uuid.New()
	otherChapter := uuid.New()
	member := activeMember(&otherChapter)
	repo := &fakeRepository{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.User, error) {
			return member, nil
		},
	}

	_, err := newServiceWithRepo(repo).GetMember(context.Background(), &actorChapter, member.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for cross-chapter lookup, got %v", err)
	}
}

func TestGetMemberHidesInactive(t *testing.T) {
	member := activeMember(nil)
	member.IsActive = false
	repo := &fakeRepository{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.User, error) {
			return member, nil
		},
	}

	_, err := newServiceWithRepo(repo).GetMember(context.Background(), nil, member.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for inactive member, got %v", err)
	}
}

func TestUpdateProfileOnlyTouchesWhitelistedColumns(t *testing.T) {
	member := activeMember(nil)
	var captured map[string]any
	repo := &fakeRepository{
		updateProfileFn: func(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.User, error) {
			captured = updates
			return member, nil
		},
	}

	name := "New Name"
	company := "Acme Consulting"
	_, err := newServiceWithRepo(repo).UpdateProfile(context.Background(), member.ID, UpdateProfileParams{
		FullName: &name,
		Company:  &company,
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}

	if len(captured) != 2 {
		t.Fatalf("expected exactly 2 updates, got %v", captured)
	}
	for _, forbidden := range []string{"id", "email", "password_hash", "user_level", "joined_at", "chapter_id", "is_active"} {
		if _, ok := captured[forbidden]; ok {
			t.Fatalf("profile update must not touch %s", forbidden)
		}
	}
}

func TestUpdateProfileRejectsEmptyName(t *testing.T) {
	svc := newServiceWithRepo(&fakeRepository{})
	empty := "   "
	_, err := svc.UpdateProfile(context.Background(), uuid.New(), UpdateProfileParams{FullName: &empty})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSetLevelValidatesInput(t *testing.T) {
	svc := newServiceWithRepo(&fakeRepository{})

	if err := svc.SetLevel(context.Background(), uuid.New(), enums.UserLevel("superuser")); err == nil {
		t.Fatal("expected error for unknown level")
	}

	repo := &fakeRepository{
		setLevelFn: func(ctx context.Context, id uuid.UUID, level enums.UserLevel) error {
			return gorm.ErrRecordNotFound
		},
	}
	err := newServiceWithRepo(repo).SetLevel(context.Background(), uuid.New(), enums.UserLevelBoardMember)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
