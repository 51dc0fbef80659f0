package tips

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/blu-networking/blu-backend/pkg/db/models"
	pkgerrors "github.com/blu-networking/blu-backend/pkg/errors"
)

// completer is the slice of the OpenAI client this service needs.
type completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

const systemPrompt = `You are a business networking coach for a professional
networking organization. Reply with a JSON object of the form
{"tips":[{"category":"...","tip":"..."}],"summary":"..."} containing three to
five practical, personalized networking tips.`

// Service generates personalized networking tips through the LLM adapter.
type Service interface {
	Generate(ctx context.Context, params GenerateParams) (*TipsResult, error)
}

type service struct {
	llm completer
}

// NewService wires the tips generator.
func NewService(llm completer) (Service, error) {
	if llm == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "llm client required")
	}
	return &service{llm: llm}, nil
}

// GenerateParams describes who the tips are for. Override fields take
// precedence over the stored profile.
type GenerateParams struct {
	Profile   *models.User
	Industry  string
	Goal      string
	EventType string
}

// Tip is a single categorized suggestion.
type Tip struct {
	Category string `json:"category"`
	Tip      string `json:"tip"`
}

// TipsResult is the validated model output.
type TipsResult struct {
	Tips    []Tip  `json:"tips"`
	Summary string `json:"summary"`
}

func (s *service) Generate(ctx context.Context, params GenerateParams) (*TipsResult, error) {
	prompt := buildPrompt(params)

	raw, err := s.llm.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var result TipsResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "parse networking tips response")
	}
	if err := validateResult(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

func buildPrompt(params GenerateParams) string {
	var b strings.Builder
	b.WriteString("Generate networking tips for this member.\n")

	industry := strings.TrimSpace(params.Industry)
	if industry == "" && params.Profile != nil && params.Profile.Industry != nil {
		industry = *params.Profile.Industry
	}
	if industry != "" {
		fmt.Fprintf(&b, "Industry: %s\n", industry)
	}
	if params.Profile != nil {
		if params.Profile.Title != nil && *params.Profile.Title != "" {
			fmt.Fprintf(&b, "Role: %s\n", *params.Profile.Title)
		}
		if params.Profile.Expertise != nil && *params.Profile.Expertise != "" {
			fmt.Fprintf(&b, "Expertise: %s\n", *params.Profile.Expertise)
		}
	}
	if goal := strings.TrimSpace(params.Goal); goal != "" {
		fmt.Fprintf(&b, "Current goal: %s\n", goal)
	}
	if eventType := strings.TrimSpace(params.EventType); eventType != "" {
		fmt.Fprintf(&b, "Upcoming event type: %s\n", eventType)
	}
	return b.String()
}

// validateResult enforces the reply shape so malformed model output never
// reaches clients.
func validateResult(result *TipsResult) error {
	if len(result.Tips) == 0 {
		return pkgerrors.New(pkgerrors.CodeDependency, "networking tips response contained no tips")
	}
	for _, tip := range result.Tips {
		if strings.TrimSpace(tip.Category) == "" || strings.TrimSpace(tip.Tip) == "" {
			return pkgerrors.New(pkgerrors.CodeDependency, "networking tips response contained an incomplete tip")
		}
	}
	return nil
}
