package screenshot

import "errors"

// ErrNotFound is returned when a screenshot row or its bytes are missing.
var ErrNotFound = errors.New("screenshot not found")

const (
	formFileField  = "screenshot"
	formEmailField = "user_email"
	imageMediaType = "image/png"
)

type uploadResponse struct {
	Status       string `json:"status"`
	ScreenshotID uint   `json:"screenshot_id"`
}
