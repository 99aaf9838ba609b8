package response

// SignupResponse echoes the accepted identity; the confirmation code itself
// only travels by email.
type SignupResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
