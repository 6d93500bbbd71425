package request

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Name     string `json:"name" form:"name" binding:"required"`
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
}

// LoginRequest represents a login request. Both JSON bodies and classic
// form-encoded credentials are accepted.
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}
