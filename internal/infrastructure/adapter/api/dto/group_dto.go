package dto

// UpdateGroupNameRequest represents the API request for renaming the group
type UpdateGroupNameRequest struct {
	Name string `json:"name"`
}

// UpdateMultiplierRequest represents the API request for changing the
// daily multiplier
type UpdateMultiplierRequest struct {
	Multiplier int `json:"multiplier" binding:"required"`
}
