package auth

// User is the public view of an account. The password hash never leaves the package.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenPair holds the access token issued at login.
type TokenPair struct {
	AccessToken string
	ExpiresIn   int64
}

// RegisterRequest for username/email/password registration.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// LoginRequest for email/password authentication.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
