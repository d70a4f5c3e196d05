package dto

// DepositForm represents the multipart form for recording a deposit.
// An optional photo file rides alongside under the "photo" field.
type DepositForm struct {
	DayNumber int    `form:"dayNumber" binding:"required"`
	Note      string `form:"note"`
	SavedOn   string `form:"savedOn"`
}

// DepositResponse represents the API response for a recorded deposit
type DepositResponse struct {
	RecordID uint64 `json:"recordId"`
	Created  bool   `json:"created"`
}

// DeleteRecordRequest represents the API request for clearing a day slot
type DeleteRecordRequest struct {
	DayNumber int `json:"dayNumber" binding:"required"`
}
