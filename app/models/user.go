package models

// User is a registered account. The password is kept as entered.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session names the user currently logged in on this client.
type Session struct {
	Username string `json:"username"`
}

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the body of a successful POST /login.
type LoginResponse struct {
	Username string `json:"username"`
}

// MessageResponse carries a human readable outcome, used for both success and failure bodies.
type MessageResponse struct {
	Message string `json:"message"`
}
