package user

// ProfileResponse is the placeholder profile payload. Settings are not
// persisted yet and are always empty.
type ProfileResponse struct {
	Email    string                 `json:"email"`
	Settings map[string]interface{} `json:"settings"`
}

type profileQuery struct {
	Email string `form:"email" binding:"required"`
}
