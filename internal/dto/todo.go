package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateCompleted parses date_completed from JSON as either date-only
// ("2006-01-02") or RFC3339. Date-only is stored as start of that day in UTC.
// A JSON null clears the completion marker; an omitted field keeps it
// (Present reports which case applies).
type DateCompleted struct {
	t       *time.Time
	present bool
}

func (d *DateCompleted) UnmarshalJSON(data []byte) error {
	d.present = true
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		d.t = nil
		return nil
	}
	s := strings.TrimSpace(*raw)
	layouts := []string{
		"2006-01-02", // date only
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			if layout == "2006-01-02" {
				parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			}
			d.t = &parsed
			return nil
		}
	}
	return fmt.Errorf("date_completed: use date (YYYY-MM-DD) or RFC3339 datetime")
}

// Ptr returns *time.Time for use in service/domain.
func (d DateCompleted) Ptr() *time.Time { return d.t }

// Present reports whether the field appeared in the payload at all.
func (d DateCompleted) Present() bool { return d.present }

type CreateTodoRequest struct {
	Title string `json:"title" binding:"required,min=1,max=200"`
	Memo  string `json:"memo" binding:"max=2000"`
}

// UpdateTodoRequest carries the mutable fields only. id, owner and created
// are never part of the payload contract; unknown keys are ignored.
type UpdateTodoRequest struct {
	Title         *string       `json:"title" binding:"omitempty,max=200"`
	Memo          *string       `json:"memo" binding:"omitempty,max=2000"`
	DateCompleted DateCompleted `json:"date_completed"` // omitted = keep, value/null = set/clear
}

type TodoResponse struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Memo          string     `json:"memo"`
	Created       time.Time  `json:"created"`
	DateCompleted *time.Time `json:"date_completed"`
	Owner         int64      `json:"owner"`
}
