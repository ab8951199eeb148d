package users

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/accountsvc/internal/server/rpc"
)

// Gender is stored as a single character: m, f or n (undisclosed). The wire
// representation uses the labels MALE, FEMALE and SECRET.
const (
	GenderMale        = "m"
	GenderFemale      = "f"
	GenderUndisclosed = "n"
)

const birthDayLayout = "2006-01-02"

// User is a primary-store account record. Password always holds a tagged
// hash, never plaintext. Phone and OpenID are optional but unique when set;
// the empty string maps to NULL in the store.
type User struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Password    string     `json:"password"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	OpenID      string     `json:"openid"`
	ScreenName  string     `json:"screen_name"`
	Gender      string     `json:"gender"`
	AvatarURL   string     `json:"avatar_url"`
	BirthDay    *time.Time `json:"birth_day"`
	IsActive    bool       `json:"is_active"`
	IsStaff     bool       `json:"is_staff"`
	IsSuperuser bool       `json:"is_superuser"`
	DateJoined  time.Time  `json:"date_joined"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// PublicMessage returns the public projection of the user. It satisfies the
// response-shaping contract of the request pipeline.
func (u *User) PublicMessage() any {
	return u.Public()
}

// Public returns the public projection of the user: the only shape of an
// account that may leave the service or be embedded in a token.
func (u *User) Public() *rpc.User {
	return &rpc.User{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Phone:       u.Phone,
		Gender:      GenderLabel(u.Gender),
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		ScreenName:  u.ScreenName,
		BirthDay:    FormatBirthDay(u.BirthDay),
		AvatarURL:   u.AvatarURL,
	}
}

// ParseGender normalizes a wire gender value ("MALE", "female", …) to the
// stored single-character form. Anything unrecognized maps to undisclosed.
func ParseGender(value string) string {
	switch strings.ToLower(value) {
	case "male", GenderMale:
		return GenderMale
	case "female", GenderFemale:
		return GenderFemale
	default:
		return GenderUndisclosed
	}
}

// GenderLabel converts a stored gender to its wire label.
func GenderLabel(gender string) string {
	switch gender {
	case GenderMale:
		return "MALE"
	case GenderFemale:
		return "FEMALE"
	default:
		return "SECRET"
	}
}

// ParseBirthDay parses a YYYY-MM-DD wire value. Empty or malformed input
// yields nil, mirroring the nullable date column.
func ParseBirthDay(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(birthDayLayout, value)
	if err != nil {
		return nil
	}
	return &t
}

// FormatBirthDay renders a birth date as YYYY-MM-DD, or "" when unset.
func FormatBirthDay(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(birthDayLayout)
}
