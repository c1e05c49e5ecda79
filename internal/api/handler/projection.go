package handler

import (
	"fmt"

	"attendance.service/internal/core/model"
)

// Projection selects the wire shape of attendance records returned by GET /attendance.
type Projection string

const (
	// ProjectionFull returns coordinates and the selfie reference as stored.
	ProjectionFull Projection = "full"
	// ProjectionCompact is the mobile dashboard shape: no coordinates, selfie under "selfie".
	ProjectionCompact Projection = "compact"
)

func ParseProjection(s string) (Projection, error) {
	switch p := Projection(s); p {
	case ProjectionFull, ProjectionCompact:
		return p, nil
	case "":
		return ProjectionFull, nil
	default:
		return "", fmt.Errorf("unknown attendance projection %q", s)
	}
}

type fullRecord struct {
	Employee  string   `json:"employee"`
	Type      string   `json:"type"`
	Date      string   `json:"date"`
	Time      string   `json:"time"`
	Location  string   `json:"location"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	SelfieURL string   `json:"selfieUrl"`
	Office    string   `json:"office"`
}

type compactRecord struct {
	Employee string `json:"employee"`
	Type     string `json:"type"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
	Office   string `json:"office"`
	Selfie   string `json:"selfie"`
}

// Render maps records to the projection. The result is never nil.
func (p Projection) Render(records []model.AttendanceRecord) any {
	if p == ProjectionCompact {
		out := make([]compactRecord, 0, len(records))
		for _, r := range records {
			out = append(out, compactRecord{
				Employee: r.Employee,
				Type:     r.Type,
				Date:     r.Date,
				Time:     r.Time,
				Location: r.Location,
				Office:   r.Office,
				Selfie:   r.SelfieURL,
			})
		}
		return out
	}

	out := make([]fullRecord, 0, len(records))
	for _, r := range records {
		out = append(out, fullRecord{
			Employee:  r.Employee,
			Type:      r.Type,
			Date:      r.Date,
			Time:      r.Time,
			Location:  r.Location,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			SelfieURL: r.SelfieURL,
			Office:    r.Office,
		})
	}
	return out
}
