// Package rpc defines the wire-level request/response messages of the
// accounts service together with the codec and service descriptor used to
// expose them over gRPC. It is the hand-maintained boundary to the transport;
// message field names follow the service's wire contract.
package rpc

// User is the public projection of an account: the subset of fields safe to
// embed in a token or return to a caller. It never carries the password hash.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Gender      string `json:"gender"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	ScreenName  string `json:"screen_name"`
	BirthDay    string `json:"birth_day"`
	AvatarURL   string `json:"avatar_url"`
}

type AuthenticateRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	OpenID   string `json:"openid"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type CreateRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	OpenID     string `json:"openid"`
	Password   string `json:"password"`
	ScreenName string `json:"screen_name"`
	Gender     string `json:"gender"`
	BirthDay   string `json:"birth_day"`
	AvatarURL  string `json:"avatar_url"`
}

type GetRequest struct {
	ID string `json:"id"`
}

type MeRequest struct{}

type UpdateRequest struct {
	ScreenName string `json:"screen_name"`
	Gender     string `json:"gender"`
	BirthDay   string `json:"birth_day"`
	AvatarURL  string `json:"avatar_url"`
}

type SetPasswordRequest struct {
	Password string `json:"password"`
}

type SetPasswordResponse struct{}

type SearchRequest struct {
	ScreenName string `json:"screen_name"`
	Username   string `json:"username"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Page       int32  `json:"page"`
	PerPage    int32  `json:"per_page"`
}

type UserList struct {
	Users []*User `json:"users"`
}
