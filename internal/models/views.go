package models

import "time"

// Read models owned by remote services. The engine never persists these,
// it only resolves them while assembling event views.

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type Comment struct {
	ID         int64     `json:"id"`
	EventID    int64     `json:"event_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedOn  time.Time `json:"created_on"`
}

// EventShort is the listing view: the event merged with remote data.
type EventShort struct {
	ID                int64     `json:"id"`
	Annotation        string    `json:"annotation"`
	Category          Category  `json:"category"`
	ConfirmedRequests int64     `json:"confirmed_requests"`
	EventDate         time.Time `json:"event_date"`
	Initiator         User      `json:"initiator"`
	Paid              bool      `json:"paid"`
	Title             string    `json:"title"`
	Views             int64     `json:"views"`
}

// EventFull is the single-event view: every stored field plus remote data
// and the event's comments, newest first.
type EventFull struct {
	ID                int64      `json:"id"`
	Annotation        string     `json:"annotation"`
	Category          Category   `json:"category"`
	Comments          []Comment  `json:"comments"`
	ConfirmedRequests int64      `json:"confirmed_requests"`
	CreatedOn         time.Time  `json:"created_on"`
	Description       string     `json:"description"`
	EventDate         time.Time  `json:"event_date"`
	Initiator         User       `json:"initiator"`
	Location          Location   `json:"location"`
	Paid              bool       `json:"paid"`
	ParticipantLimit  int64      `json:"participant_limit"`
	PublishedOn       *time.Time `json:"published_on,omitempty"`
	RequestModeration bool       `json:"request_moderation"`
	State             EventState `json:"state"`
	Title             string     `json:"title"`
	Views             int64      `json:"views"`
}
