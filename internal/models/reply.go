package models

import "time"

// Reply kinds: what a staff reply refers to.
const (
	ReplyKindResponse  = "response"
	ReplyKindComplaint = "complaint"
)

// Reply is a staff message targeted at a student, referring to either a
// feedback response or a complaint via its reply key.
type Reply struct {
	ID         string    `db:"id" json:"id"`
	TargetUser string    `db:"target_user" json:"targetUser"`
	Kind       string    `db:"kind" json:"kind"`
	RefKey     string    `db:"ref_key" json:"refKey"`
	Message    string    `db:"message" json:"message"`
	CreatedBy  string    `db:"created_by" json:"createdBy"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
