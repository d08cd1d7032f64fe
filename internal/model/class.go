package model

import "time"

// Class is a weekly recurring class definition: every {Weekday} at
// {StartTime}, at most {Capacity} members per occurrence.
type Class struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Weekday   Weekday   `json:"weekday"`
	StartTime TimeOfDay `json:"start_time"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateClassRequest is the payload for creating or updating a class.
// Weekday and StartTime are pointers so a missing field fails "required"
// instead of silently defaulting to Sunday 00:00.
type CreateClassRequest struct {
	Name      string     `json:"name" binding:"required,min=2,max=100"`
	Weekday   *Weekday   `json:"weekday" binding:"required"`
	StartTime *TimeOfDay `json:"start_time" binding:"required"`
	Capacity  int        `json:"capacity" binding:"required,min=1"`
}
