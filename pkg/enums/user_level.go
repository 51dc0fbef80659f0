package enums

import "fmt"

// UserLevel represents a member's position in the chapter role hierarchy.
type UserLevel string

const (
	UserLevelMember         UserLevel = "member"
	UserLevelBoardMember    UserLevel = "board_member"
	UserLevelExecutiveBoard UserLevel = "executive_board"
)

var userLevelRanks = map[UserLevel]int{
	UserLevelMember:         1,
	UserLevelBoardMember:    2,
	UserLevelExecutiveBoard: 3,
}

// String implements fmt.Stringer.
func (l UserLevel) String() string {
	return string(l)
}

// IsValid reports whether the value is a known UserLevel.
func (l UserLevel) IsValid() bool {
	_, ok := userLevelRanks[l]
	return ok
}

// Rank returns the level's position in the hierarchy; unknown levels rank 0.
func (l UserLevel) Rank() int {
	return userLevelRanks[l]
}

// AtLeast reports whether the level sits at or above the required level.
// Unknown levels never satisfy any requirement.
func (l UserLevel) AtLeast(required UserLevel) bool {
	if !l.IsValid() || !required.IsValid() {
		return false
	}
	return l.Rank() >= required.Rank()
}

// ParseUserLevel converts raw input into a UserLevel.
func ParseUserLevel(value string) (UserLevel, error) {
	level := UserLevel(value)
	if !level.IsValid() {
		return "", fmt.Errorf("invalid user level %q", value)
	}
	return level, nil
}
