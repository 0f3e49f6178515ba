package domain

import "time"

// Todo is the domain entity for a single todo item. It is owned by exactly
// one user; OwnerID is set at creation and never reassigned.
type Todo struct {
	ID            int64
	Title         string
	Memo          string
	Created       time.Time
	DateCompleted *time.Time
	OwnerID       int64
}
