package models

// AdminUser is the authenticated administrator profile returned by the
// login endpoint. The shape is owned by the backend; fields we do not
// render are ignored during decoding.
type AdminUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

// DisplayName returns the best available human-readable name.
func (u AdminUser) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// UserRow is one row of the platform user listing.
type UserRow struct {
	UserID           int     `json:"user_id"`
	FullName         string  `json:"full_name"`
	Email            string  `json:"email"`
	AverageScore     float64 `json:"average_score"`
	TotalInterviews  int     `json:"total_interviews"`
	LastInterview    *string `json:"last_interview"`
	RegistrationDate *string `json:"registration_date"`
}
