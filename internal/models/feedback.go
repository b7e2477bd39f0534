package models

// Feedback is one interview feedback entry.
type Feedback struct {
	ID          int    `json:"id"`
	UserID      int    `json:"user_id"`
	Mode        string `json:"mode"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment,omitempty"`
	UpdatedAt   string `json:"updated_at"`
	InterviewID int    `json:"interview_id"`
}

// Stars renders the rating as a 5-slot star string.
func (f Feedback) Stars() string {
	const filled, empty = '★', '☆'
	out := make([]rune, 5)
	for i := 0; i < 5; i++ {
		if i < f.Rating {
			out[i] = filled
		} else {
			out[i] = empty
		}
	}
	return string(out)
}
