package model

import (
	"io"
)

// Observed values of AttendanceRecord.Type. The set is open; other tags are
// stored as given.
const (
	TypeCheckIn  = "check-in"
	TypeCheckOut = "check-out"
)

// AttendanceRecord is one stored check-in or check-out event. Records are
// written once and never updated.
type AttendanceRecord struct {
	ID        string   `json:"id,omitempty"`
	Employee  string   `json:"employee"`
	Type      string   `json:"type"`
	Date      string   `json:"date"`
	Time      string   `json:"time"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Location  string   `json:"location"`
	Office    string   `json:"office"`
	SelfieURL string   `json:"selfieUrl"`
}

// AttendanceFilter holds exact-match predicates. Empty fields are ignored.
type AttendanceFilter struct {
	Employee string
	Date     string
}

// Submission is the raw input of a check-in/out. Coordinates arrive as text
// and are coerced by the service.
type Submission struct {
	Employee  string
	Type      string
	Date      string
	Time      string
	Latitude  string
	Longitude string
	Location  string
	Office    string
	Selfie    *Attachment
}

// Attachment is an uploaded selfie image.
type Attachment struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type Employee struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

type Office struct {
	ID        string   `json:"id,omitempty"`
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}
