// Package fallback reads and, during the migration window, mirrors into the
// legacy user table. The table is owned entirely by the legacy system: this
// service never migrates its schema and never deletes from it.
package fallback

import (
	"strings"
	"time"
)

// User is a legacy-store account record. UUID carries the canonical dashed
// form in memory; the legacy column stores it dash-free.
type User struct {
	UUID        string
	Username    string
	Password    string
	Email       string
	Phone       string
	Gender      string
	IsActive    bool
	IsStaff     bool
	IsSuperuser bool
	DateJoined  time.Time
}

// Query identifies a legacy user by any combination of its unique fields.
// Empty fields are ignored; the provided fields are ANDed together.
type Query struct {
	Username string
	Email    string
	Phone    string
}

// IsEmpty reports whether no identifying field is set.
func (q Query) IsEmpty() bool {
	return q == Query{}
}

// NormalizeUUID converts the legacy dash-free 32-character form into the
// canonical dashed form. Values that are not 32 characters long pass
// through unchanged.
func NormalizeUUID(value string) string {
	if len(value) != 32 {
		return value
	}
	return strings.Join([]string{
		value[0:8], value[8:12], value[12:16], value[16:20], value[20:32],
	}, "-")
}

// StripUUID converts a canonical dashed UUID into the legacy dash-free form.
func StripUUID(value string) string {
	return strings.ReplaceAll(value, "-", "")
}
