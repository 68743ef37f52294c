package user

import "time"

// User represents a registered member. Authentication (OTP login) lives
// in the mobile shell; this server only keeps the member registry that
// groups, expenses and settlements reference.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}
