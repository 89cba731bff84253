package domain

// AdminOverview aggregates the headline counts shown on the admin dashboard.
type AdminOverview struct {
	TotalUsers           int `json:"total_users"`
	TotalPractitioners   int `json:"total_practitioners"`
	PendingVerifications int `json:"pending_verifications"`
	TotalBookings        int `json:"total_bookings"`
	PendingBookings      int `json:"pending_bookings"`
}
