package model

import "time"

// Member is a gym member in the front-desk directory. Members do not log
// in; staff enroll them into classes on their behalf.
type Member struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateMemberRequest is the payload for creating a new member.
type CreateMemberRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=100"`
	Email string `json:"email" binding:"omitempty,email,max=100"`
	Phone string `json:"phone" binding:"omitempty,min=4,max=30"`
}

// UpdateMemberRequest is the payload for updating an existing member.
type UpdateMemberRequest struct {
	Name   string `json:"name" binding:"required,min=2,max=100"`
	Email  string `json:"email" binding:"omitempty,email,max=100"`
	Phone  string `json:"phone" binding:"omitempty,min=4,max=30"`
	Active *bool  `json:"active" binding:"required"`
}
