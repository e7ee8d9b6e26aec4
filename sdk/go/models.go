package answerai

// Surprise is a surprise payload returned by the API.
type Surprise struct {
	Type      string                 `json:"type"`
	Content   map[string]interface{} `json:"content"`
	Timestamp string                 `json:"timestamp"`
}

// IsDaily reports whether the surprise is the surprise of the day.
func (s *Surprise) IsDaily() bool {
	daily, _ := s.Content["daily"].(bool)
	return daily
}

// MessageResponse is the body of endpoints that only acknowledge a request.
type MessageResponse struct {
	Message       string `json:"message"`
	EmailVerified bool   `json:"emailVerified,omitempty"`
}
