package identity

import (
	"strings"

	"marketplace/internal/core/domain/model/kernel"
)

// User is the account record behind every principal. It is read-only here;
// accounts are managed by the authentication service.
type User struct {
	ID        kernel.UUID
	Username  string
	FirstName string
	LastName  string
	Email     string
}

// DisplayName is "First Last", or the username when both names are empty.
func (u User) DisplayName() string {
	return DisplayName(u.FirstName, u.LastName, u.Username)
}

func DisplayName(first, last, username string) string {
	full := strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
	if full == "" {
		return username
	}
	return full
}
