package domain

import "time"

// User is a stored account. Deleted accounts are kept so records keep their owner.
type User struct {
	UserID       int64      `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	ManagerID    *int64     `json:"managerId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `json:"deletedAt,omitempty"`
}

// Principal returns the principal view of the stored user.
func (u User) Principal() Principal {
	return Principal{ID: u.UserID, Username: u.Username, Role: u.Role, ManagerID: u.ManagerID}
}
