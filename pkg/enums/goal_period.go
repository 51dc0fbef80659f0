package enums

import "fmt"

// GoalPeriod is the window a member's goal counters cover.
type GoalPeriod string

const (
	GoalPeriodWeekly    GoalPeriod = "weekly"
	GoalPeriodMonthly   GoalPeriod = "monthly"
	GoalPeriodQuarterly GoalPeriod = "quarterly"
	GoalPeriodYearly    GoalPeriod = "yearly"
)

var validGoalPeriods = []GoalPeriod{
	GoalPeriodWeekly,
	GoalPeriodMonthly,
	GoalPeriodQuarterly,
	GoalPeriodYearly,
}

func (p GoalPeriod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known GoalPeriod.
func (p GoalPeriod) IsValid() bool {
	for _, candidate := range validGoalPeriods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseGoalPeriod converts raw input into a GoalPeriod.
func ParseGoalPeriod(value string) (GoalPeriod, error) {
	for _, candidate := range validGoalPeriods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid goal period %q", value)
}
