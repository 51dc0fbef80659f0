package goals

import (
	"context"
	"errors"
	"time"

	"github.com/blu-networking/blu-backend/pkg/db"
	"github.com/blu-networking/blu-backend/pkg/db/models"
	"github.com/blu-networking/blu-backend/pkg/enums"
	pkgerrors "github.com/blu-networking/blu-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines goal operations. Goals are private to the owning member.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*models.UserGoal, error)
	Get(ctx context.Context, userID, goalID uuid.UUID) (*models.UserGoal, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.UserGoal, error)
	Current(ctx context.Context, userID uuid.UUID) (*ProgressView, error)
	Upsert(ctx context.Context, params CreateParams) (*models.UserGoal, error)
	Update(ctx context.Context, userID, goalID uuid.UUID, params UpdateParams) (*models.UserGoal, error)
	Delete(ctx context.Context, userID, goalID uuid.UUID) error
}

type service struct {
	db *db.Client
}

// NewService wires goal dependencies.
func NewService(client *db.Client) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "database client required")
	}
	return &service{db: client}, nil
}

// CreateParams describes a new goal period.
type CreateParams struct {
	UserID          uuid.UUID
	Period          enums.GoalPeriod
	StartsOn        time.Time
	EndsOn          time.Time
	TargetReferrals int
	TargetOneToOnes int
	TargetEvents    int
	TargetLeads     int
}

func (s *service) Create(ctx context.Context, params CreateParams) (*models.UserGoal, error) {
	if params.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "goal owner required")
	}
	if !params.Period.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid goal period")
	}
	if params.StartsOn.IsZero() || params.EndsOn.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "goal period dates required")
	}
	if !params.EndsOn.After(params.StartsOn) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "goal period must end after it starts")
	}
	if params.TargetReferrals < 0 || params.TargetOneToOnes < 0 || params.TargetEvents < 0 || params.TargetLeads < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "goal targets cannot be negative")
	}

	goal := &models.UserGoal{
		UserID:          params.UserID,
		Period:          params.Period,
		StartsOn:        params.StartsOn.UTC(),
		EndsOn:          params.EndsOn.UTC(),
		TargetReferrals: params.TargetReferrals,
		TargetOneToOnes: params.TargetOneToOnes,
		TargetEvents:    params.TargetEvents,
		TargetLeads:     params.TargetLeads,
	}
	if err := NewRepository(s.db.DB()).Create(ctx, goal); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create goal")
	}
	return goal, nil
}

func (s *service) findOwned(ctx context.Context, userID, goalID uuid.UUID) (*models.UserGoal, error) {
	goal, err := NewRepository(s.db.DB()).FindByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "goal not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load goal")
	}
	if goal.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "goal not found")
	}
	return goal, nil
}

func (s *service) Get(ctx context.Context, userID, goalID uuid.UUID) (*models.UserGoal, error) {
	if userID == uuid.Nil || goalID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id and goal id required")
	}
	return s.findOwned(ctx, userID, goalID)
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]models.UserGoal, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	rows, err := NewRepository(s.db.DB()).ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list goals")
	}
	return rows, nil
}

// MetricProgress pairs one goal counter with its target.
type MetricProgress struct {
	Target   int     `json:"target"`
	Achieved int     `json:"achieved"`
	Percent  float64 `json:"percent"`
}

func metricProgress(target, achieved int) MetricProgress {
	progress := MetricProgress{Target: target, Achieved: achieved}
	if target > 0 {
		progress.Percent = float64(achieved) / float64(target) * 100
	}
	return progress
}

// ProgressView is the member's active goal with per-metric completion.
type ProgressView struct {
	Goal      models.UserGoal `json:"goal"`
	Referrals MetricProgress  `json:"referrals"`
	OneToOnes MetricProgress  `json:"one_to_ones"`
	Events    MetricProgress  `json:"events"`
	Leads     MetricProgress  `json:"leads"`
}

func (s *service) Current(ctx context.Context, userID uuid.UUID) (*ProgressView, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	goal, err := NewRepository(s.db.DB()).FindCurrent(ctx, userID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no active goal")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load current goal")
	}

	return &ProgressView{
		Goal:      *goal,
		Referrals: metricProgress(goal.TargetReferrals, goal.AchievedReferrals),
		OneToOnes: metricProgress(goal.TargetOneToOnes, goal.AchievedOneToOnes),
		Events:    metricProgress(goal.TargetEvents, goal.AchievedEvents),
		Leads:     metricProgress(goal.TargetLeads, goal.AchievedLeads),
	}, nil
}

// Upsert replaces the targets of the goal covering the new period's start, or
// creates a fresh goal when none is active. Achieved counters survive the
// update.
func (s *service) Upsert(ctx context.Context, params CreateParams) (*models.UserGoal, error) {
	if params.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "goal owner required")
	}
	if params.StartsOn.IsZero() {
		params.StartsOn = time.Now().UTC()
	}

	existing, err := NewRepository(s.db.DB()).FindCurrent(ctx, params.UserID, params.StartsOn.UTC())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.Create(ctx, params)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load current goal")
	}

	return s.Update(ctx, params.UserID, existing.ID, UpdateParams{
		TargetReferrals: &params.TargetReferrals,
		TargetOneToOnes: &params.TargetOneToOnes,
		TargetEvents:    &params.TargetEvents,
		TargetLeads:     &params.TargetLeads,
	})
}

// UpdateParams lists the editable goal fields. Achieved counters are member
// reported and edited directly.
type UpdateParams struct {
	TargetReferrals   *int
	AchievedReferrals *int
	TargetOneToOnes   *int
	AchievedOneToOnes *int
	TargetEvents      *int
	AchievedEvents    *int
	TargetLeads       *int
	AchievedLeads     *int
	EndsOn            *time.Time
}

func (s *service) Update(ctx context.Context, userID, goalID uuid.UUID, params UpdateParams) (*models.UserGoal, error) {
	if userID == uuid.Nil || goalID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id and goal id required")
	}

	goal, err := s.findOwned(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	if params.EndsOn != nil && !params.EndsOn.After(goal.StartsOn) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "goal period must end after it starts")
	}

	updates := map[string]any{}
	for column, value := range map[string]*int{
		"target_referrals":     params.TargetReferrals,
		"achieved_referrals":   params.AchievedReferrals,
		"target_one_to_ones":   params.TargetOneToOnes,
		"achieved_one_to_ones": params.AchievedOneToOnes,
		"target_events":        params.TargetEvents,
		"achieved_events":      params.AchievedEvents,
		"target_leads":         params.TargetLeads,
		"achieved_leads":       params.AchievedLeads,
	} {
		if value == nil {
			continue
		}
		if *value < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "goal counters cannot be negative")
		}
		updates[column] = *value
	}
	if params.EndsOn != nil {
		updates["ends_on"] = params.EndsOn.UTC()
	}

	updated, err := NewRepository(s.db.DB()).Update(ctx, goalID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "goal not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update goal")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, userID, goalID uuid.UUID) error {
	if userID == uuid.Nil || goalID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id and goal id required")
	}
	if _, err := s.findOwned(ctx, userID, goalID); err != nil {
		return err
	}
	if err := NewRepository(s.db.DB()).Delete(ctx, goalID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "goal not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete goal")
	}
	return nil
}
