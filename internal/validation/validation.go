// Package validation holds the input format rules shared by the HTTP
// handlers and the admin CLI.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// ProjectNamePattern defines the accepted project name format. Names
// appear as URL path segments, so only lowercase letters, digits,
// hyphens and underscores are allowed. Length: 2-64 characters.
var ProjectNamePattern = regexp.MustCompile(`^[a-z0-9_-]{2,64}$`)

const (
	MinProjectNameLen = 2
	MaxProjectNameLen = 64
)

// ValidateProjectName checks that a project name is usable as a path
// segment.
func ValidateProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("project name cannot be empty")
	}

	if len(name) < MinProjectNameLen {
		return fmt.Errorf("project name must be at least %d characters long", MinProjectNameLen)
	}

	if len(name) > MaxProjectNameLen {
		return fmt.Errorf("project name must not exceed %d characters", MaxProjectNameLen)
	}

	if !ProjectNamePattern.MatchString(name) {
		return fmt.Errorf("project name can only contain lowercase letters (a-z), numbers (0-9), hyphens (-) and underscores (_)")
	}

	return nil
}

// ValidateEmail applies a minimal shape check. Deliverability is not a
// concern here; the address only identifies an account.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return fmt.Errorf("email must contain a local part and a domain")
	}

	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	const minPasswordLen = 8

	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLen)
	}

	return nil
}
