package dto

// ── admin API auth ──

// LoginRequest is the admin credential login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token pair.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshRequest exchanges a refresh token for a new pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ── calendar session ──

// CalendarLoginRequest carries the OAuth2 authorization code obtained from
// the consent URL.
type CalendarLoginRequest struct {
	AuthCode string `json:"auth_code" binding:"required"`
}

// CalendarAuthURLResponse carries the consent URL to visit.
type CalendarAuthURLResponse struct {
	AuthURL string `json:"auth_url"`
}
