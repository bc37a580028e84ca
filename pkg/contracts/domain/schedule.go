package domain

import (
	"time"
)

// Assignment represents one validated proctoring assignment: a single exam
// slot assigned to a single proctor. Rows carrying several proctor columns are
// expanded into one Assignment per proctor during normalization.
type Assignment struct {
	Exam     string    `json:"exam"`
	Proctor  string    `json:"proctor"`
	Date     time.Time `json:"date"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Location string    `json:"location,omitempty"`

	// Descriptive columns carried through for the event description.
	Course     string `json:"course,omitempty"`
	Section    string `json:"section,omitempty"`
	Instructor string `json:"instructor,omitempty"`
	Enrolled   string `json:"enrolled,omitempty"`

	// Proctors lists everyone assigned to the same sheet row, including
	// this assignment's own proctor.
	Proctors []string `json:"proctors,omitempty"`
}

// Event represents the exportable calendar view of an Assignment.
type Event struct {
	UID         string    `json:"uid"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
}

// Calendar represents an ordered collection of events: either the master
// schedule or a single proctor's slice of it.
type Calendar struct {
	Name   string  `json:"name"`
	Events []Event `json:"events"`
}
