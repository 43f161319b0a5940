package models

import "time"

type User struct {
	ID        string    `bson:"id" json:"id"`
	FullName  string    `bson:"full_name" json:"fullName"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone" json:"phone"`
	Password  string    `bson:"password" json:"password,omitempty"` // bcrypt hash
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// SessionUser is the trimmed-down projection stored in session tokens
// and returned to clients. It never carries credentials.
type SessionUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (u *User) Session() SessionUser {
	return SessionUser{ID: u.ID, Name: u.FullName}
}
