package dto

// RegisterRequest represents the API request for creating an account.
// Supplying groupCode joins an existing group; leaving it empty creates
// a new one named groupName.
type RegisterRequest struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	GroupCode  string `json:"groupCode"`
	GroupName  string `json:"groupName"`
	Multiplier int    `json:"multiplier"`
}

// RegisterResponse represents the API response for a created account
type RegisterResponse struct {
	UserID    uint64 `json:"userId"`
	GroupCode string `json:"groupCode"`
	GroupName string `json:"groupName"`
}

// LoginRequest represents the API request for logging in
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the API response for a successful login
type LoginResponse struct {
	UserID uint64 `json:"userId"`
	Token  string `json:"token"`
}

// ChangePasswordRequest represents the API request for changing the password
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}
