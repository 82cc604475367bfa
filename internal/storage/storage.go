package storage

import (
	"time"

	"eventflow/internal/models"
)

// EventsFilter is the declarative filter behind the admin and public event
// listings. Zero-valued fields impose no constraint. Which fields are
// honored depends on the listing mode: admin listings use Users and States,
// public listings use Text, Paid and OnlyAvailable.
type EventsFilter struct {
	Text          string
	Users         []int64
	States        []models.EventState
	Categories    []int64
	Paid          *bool
	RangeStart    *time.Time
	RangeEnd      *time.Time
	OnlyAvailable bool
}

// Page is offset/limit paging as it arrives from the transport layer.
type Page struct {
	From uint64
	Size uint64
}

func DefaultPage() Page {
	return Page{From: 0, Size: 10}
}
