// Package models defines the persisted account, session and message types.
// JSON field names are part of the stored format and must stay stable.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account is a registered user as kept in the accounts collection.
// ID is assigned at registration and never changes. Password is stored
// as entered; hardening credential storage is out of scope here.
type Account struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	ProfilePicture string `json:"profilePicture"`
	CreatedAt      string `json:"createdAt"`
}

// Session is the public subset of an Account exposed to the UI and
// persisted as the active-session record.
type Session struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
}

// SessionView returns the public session projection of the account.
func (a Account) SessionView() Session {
	return Session{ID: a.ID, Username: a.Username, ProfilePicture: a.ProfilePicture}
}

// NewID builds a generated identifier of the form <prefix>_<millis>_<suffix>.
// The millisecond component keeps ids roughly sortable by creation time,
// the random suffix disambiguates ids created in the same millisecond.
func NewID(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:7]
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), suffix)
}

// Timestamp formats t as the ISO-8601 string used in all persisted records.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
