package usecase

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"reviewhub/internal/data/entity"
	"reviewhub/pkg/utils"
)

// usernameAllowed reports whether r belongs to the allowed username charset.
func usernameAllowed(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z':
	case r >= 'a' && r <= 'z':
	case r >= '0' && r <= '9':
	case r == '_' || r == '.' || r == '@' || r == '+' || r == '-':
	default:
		return false
	}
	return true
}

// ValidateUsername enforces the username charset and the reserved
// current-user segment. The error message enumerates every offending
// character so the caller can fix them all at once.
func ValidateUsername(username, reserved string) error {
	seen := make(map[rune]bool)
	var bad []string
	for _, r := range username {
		if !usernameAllowed(r) && !seen[r] {
			seen[r] = true
			bad = append(bad, string(r))
		}
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return utils.NewValidationError("username",
			fmt.Sprintf("contains forbidden characters: %s", strings.Join(bad, " ")))
	}

	if reserved != "" && strings.EqualFold(username, reserved) {
		return utils.NewValidationError("username",
			fmt.Sprintf("using %q as a username is forbidden", reserved))
	}

	return nil
}

// ValidateYear rejects release years in the future.
func ValidateYear(year int) error {
	current := time.Now().Year()
	if year > current {
		return utils.NewValidationError("year",
			fmt.Sprintf("must not exceed the current year %d", current))
	}
	return nil
}

// ValidateScore enforces the inclusive review score range, reporting which
// bound was crossed.
func ValidateScore(score int) error {
	if score < entity.ScoreMin {
		return utils.NewValidationError("score",
			fmt.Sprintf("must be at least %d", entity.ScoreMin))
	}
	if score > entity.ScoreMax {
		return utils.NewValidationError("score",
			fmt.Sprintf("must be at most %d", entity.ScoreMax))
	}
	return nil
}
