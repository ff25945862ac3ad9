package models

// UserProfile is the cached identity of the logged-in user. It is persisted
// alongside the bearer token and only ever replaced wholesale.
type UserProfile struct {
	UserID   int    `json:"userId"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Credentials is the login form payload.
type Credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the account creation payload.
type RegisterRequest struct {
	Username   string `json:"username" binding:"required,min=3,max=50"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	FullName   string `json:"fullName" binding:"required"`
	Department string `json:"department"`
}

// LoginResponse is the upstream login payload. The profile fields arrive
// flattened next to the token; User is populated by the session manager from
// exactly those fields.
type LoginResponse struct {
	Token    string       `json:"token"`
	UserID   int          `json:"userId"`
	Username string       `json:"username"`
	FullName string       `json:"fullName"`
	IsAdmin  bool         `json:"isAdmin"`
	User     *UserProfile `json:"user,omitempty"`
}

// RegisterResponse is the upstream registration payload.
type RegisterResponse struct {
	Token string       `json:"token"`
	User  *UserProfile `json:"user"`
}

// ManagedUser is a directory entry on the admin user-management screen.
type ManagedUser struct {
	ID         int    `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FullName   string `json:"fullName"`
	Department string `json:"department"`
	IsAdmin    bool   `json:"isAdmin"`
}

// UpdateUserRequest carries the editable fields of a managed user.
type UpdateUserRequest struct {
	Username   string `json:"username" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	FullName   string `json:"fullName"`
	Department string `json:"department"`
}
