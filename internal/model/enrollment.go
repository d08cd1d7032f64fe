package model

import "time"

// Enrollment is one seat taken in one concrete occurrence of a class.
// (ClassID, MemberID, OccurrenceDate) is the natural key — the ledger
// never holds two rows sharing all three.
type Enrollment struct {
	ID             int       `json:"id"`
	ClassID        int       `json:"class_id"`
	MemberID       int       `json:"member_id"`
	OccurrenceDate time.Time `json:"occurrence_date"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToggleEnrollmentRequest is the payload for the enroll/unsubscribe endpoint.
// Member existence is the directory's concern, not the engine's; only the
// class is validated here.
type ToggleEnrollmentRequest struct {
	MemberID    int  `json:"member_id" binding:"required,min=1"`
	Unsubscribe bool `json:"unsubscribe"`
}
