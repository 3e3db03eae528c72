package interaction

import (
	"fmt"
	"strings"
	"time"
)

// EventType identifies the kind of tracked interaction
type EventType string

const (
	EventTypeSearch EventType = "search"
	EventTypeClick  EventType = "click"
)

// IsValid checks whether the event type is one of the known kinds
func (t EventType) IsValid() bool {
	return t == EventTypeSearch || t == EventTypeClick
}

// Event is one recorded search or click interaction by a user.
// Timestamp and Seq are assigned by the store at write time, never by the
// caller; Seq breaks ties between events recorded on the same wall-clock tick.
type Event struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	EventType EventType `json:"event_type"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Seq       int64     `json:"seq"`
}

// Validate checks the invariants an event must satisfy before it is appended
func (e Event) Validate() error {
	if e.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if !e.EventType.IsValid() {
		return fmt.Errorf("unknown event type: %s", e.EventType)
	}
	if strings.TrimSpace(e.Content) == "" {
		return fmt.Errorf("content must not be empty")
	}
	return nil
}

// ClickedProduct describes the product a click event refers to.
// All fields except ProductName are optional.
type ClickedProduct struct {
	ProductName string `json:"product_name" validate:"required,max=500"`
	Brand       string `json:"brand,omitempty" validate:"omitempty,max=200"`
	Category    string `json:"category,omitempty" validate:"omitempty,max=200"`
	Supplier    string `json:"supplier,omitempty" validate:"omitempty,max=200"`
}

// Content joins the non-empty fields with single spaces. Empty fields are
// omitted entirely rather than rendered as empty tokens.
func (c ClickedProduct) Content() string {
	parts := make([]string, 0, 4)
	for _, f := range []string{c.ProductName, c.Brand, c.Category, c.Supplier} {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}
