package models

import "time"

// EventState is the moderation state of an event.
type EventState string

const (
	StatePending   EventState = "PENDING"
	StatePublished EventState = "PUBLISHED"
	StateCanceled  EventState = "CANCELED"
)

// StateAction is a requested state transition carried inside an update.
// Owner updates honor SendToReview/CancelReview, admin updates honor
// PublishEvent/RejectEvent; the remaining actions are accepted as no-ops.
type StateAction string

const (
	ActionSendToReview StateAction = "SEND_TO_REVIEW"
	ActionCancelReview StateAction = "CANCEL_REVIEW"
	ActionPublishEvent StateAction = "PUBLISH_EVENT"
	ActionRejectEvent  StateAction = "REJECT_EVENT"
)

type Event struct {
	ID                int64      `json:"id" db:"id"`
	Annotation        string     `json:"annotation" db:"annotation"`
	CategoryID        int64      `json:"category_id" db:"category_id"`
	CreatedOn         time.Time  `json:"created_on" db:"created_on"`
	Description       string     `json:"description" db:"description"`
	EventDate         time.Time  `json:"event_date" db:"event_date"`
	InitiatorID       int64      `json:"initiator_id" db:"initiator_id"`
	LocationID        int64      `json:"-" db:"location_id"`
	Paid              bool       `json:"paid" db:"paid"`
	ParticipantLimit  int64      `json:"participant_limit" db:"participant_limit"`
	PublishedOn       *time.Time `json:"published_on,omitempty" db:"published_on"`
	RequestModeration bool       `json:"request_moderation" db:"request_moderation"`
	State             EventState `json:"state" db:"state"`
	Title             string     `json:"title" db:"title"`
}

type Location struct {
	ID  int64   `json:"id" db:"id"`
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// NewEvent is the payload for event creation. Location comes in as raw
// coordinates, not an id: the engine deduplicates it into a Location row.
type NewEvent struct {
	Annotation        string      `json:"annotation"`
	CategoryID        int64       `json:"category"`
	Description       string      `json:"description"`
	EventDate         time.Time   `json:"event_date"`
	Location          Coordinates `json:"location"`
	Paid              bool        `json:"paid"`
	ParticipantLimit  int64       `json:"participant_limit"`
	RequestModeration bool        `json:"request_moderation"`
	Title             string      `json:"title"`
}

// EventPatch carries partial updates. A nil field means "leave unchanged",
// never "clear" - this holds for every update operation.
type EventPatch struct {
	Annotation        *string      `json:"annotation,omitempty"`
	CategoryID        *int64       `json:"category,omitempty"`
	Description       *string      `json:"description,omitempty"`
	EventDate         *time.Time   `json:"event_date,omitempty"`
	Location          *Coordinates `json:"location,omitempty"`
	Paid              *bool        `json:"paid,omitempty"`
	ParticipantLimit  *int64       `json:"participant_limit,omitempty"`
	RequestModeration *bool        `json:"request_moderation,omitempty"`
	Title             *string      `json:"title,omitempty"`
	StateAction       *StateAction `json:"state_action,omitempty"`
}
