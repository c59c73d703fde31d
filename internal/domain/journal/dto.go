package journal

import (
	"strings"
	"time"

	"github.com/rovicpogi/Stoninonew/internal/pkg/validator"
)

type CreateEntryRequest struct {
	TeacherID  string `json:"-"`
	Date       string `json:"date"`
	Subject    string `json:"subject"`
	Topic      string `json:"topic"`
	Activities string `json:"activities"`
	Notes      string `json:"notes"`
}

func (r *CreateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs.Add("date", "date is required")
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}

	r.Subject = strings.TrimSpace(r.Subject)
	r.Topic = strings.TrimSpace(r.Topic)
	errs.Required("subject", r.Subject)
	errs.Required("topic", r.Topic)
	if len(r.Activities) > 5000 || len(r.Notes) > 5000 {
		errs.Add("notes", "activities and notes must not exceed 5000 characters")
	}

	return errs.OrNil()
}

func (r *CreateEntryRequest) EntryDate() time.Time {
	d, _ := validator.IsValidDate(r.Date)
	return d
}

type EntryResponse struct {
	ID         string    `json:"id"`
	Date       string    `json:"date"`
	Subject    string    `json:"subject"`
	Topic      string    `json:"topic"`
	Activities *string   `json:"activities"`
	Notes      *string   `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewEntryResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:         e.ID,
		Date:       e.EntryDate.Format("2006-01-02"),
		Subject:    e.Subject,
		Topic:      e.Topic,
		Activities: e.Activities,
		Notes:      e.Notes,
		CreatedAt:  e.CreatedAt,
	}
}
