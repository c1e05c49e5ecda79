package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"attendance.service/internal/core/model"
	"attendance.service/internal/ports/media"
	"attendance.service/internal/ports/messaging"
	"attendance.service/internal/ports/repository"
	"github.com/rs/zerolog/log"
)

var (
	ErrSelfieUpload = errors.New("failed to store selfie")
	ErrRecordInsert = errors.New("failed to save attendance record")
	ErrRecordQuery  = errors.New("failed to query attendance records")
)

// EventPublisher announces stored records to downstream consumers.
type EventPublisher interface {
	PublishAttendanceRecorded(ctx context.Context, event messaging.AttendanceRecordedEvent) error
}

type AttendanceService struct {
	repo      repository.AttendanceRepository
	sink      media.Sink
	publisher EventPublisher
	now       func() time.Time
}

type Option func(*AttendanceService)

// WithPublisher enables best-effort event publishing after each stored record.
func WithPublisher(p EventPublisher) Option {
	return func(s *AttendanceService) { s.publisher = p }
}

// WithClock replaces time.Now, used for naming uploads.
func WithClock(now func() time.Time) Option {
	return func(s *AttendanceService) { s.now = now }
}

// NewAttendanceService wires the record store and the media sink used for selfies.
func NewAttendanceService(repo repository.AttendanceRepository, sink media.Sink, opts ...Option) *AttendanceService {
	s := &AttendanceService{
		repo: repo,
		sink: sink,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit stores one attendance event. The selfie, when attached, is uploaded
// before the record is written; an upload failure means nothing is written.
// Duplicate submissions are stored as separate records.
func (s *AttendanceService) Submit(ctx context.Context, sub model.Submission) (*model.AttendanceRecord, error) {
	selfieURL := ""
	if sub.Selfie != nil {
		name := SelfieName(s.now(), sub.Selfie.Filename)
		url, err := s.sink.Store(ctx, name, sub.Selfie.Content, sub.Selfie.Size, sub.Selfie.ContentType)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSelfieUpload, err)
		}
		selfieURL = url
	}

	record := &model.AttendanceRecord{
		Employee:  sub.Employee,
		Type:      sub.Type,
		Date:      sub.Date,
		Time:      sub.Time,
		Latitude:  CoerceCoordinate(sub.Latitude),
		Longitude: CoerceCoordinate(sub.Longitude),
		Location:  sub.Location,
		Office:    sub.Office,
		SelfieURL: selfieURL,
	}

	// An uploaded selfie is not removed if this fails.
	if err := s.repo.Insert(ctx, record); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRecordInsert, err)
	}

	s.publishRecorded(ctx, record)
	return record, nil
}

// Query returns every record matching the filter, in store order.
func (s *AttendanceService) Query(ctx context.Context, filter model.AttendanceFilter) ([]model.AttendanceRecord, error) {
	records, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRecordQuery, err)
	}
	return records, nil
}

// publishRecorded never fails the submission; the record is already stored.
func (s *AttendanceService) publishRecorded(ctx context.Context, record *model.AttendanceRecord) {
	if s.publisher == nil {
		return
	}

	event := messaging.AttendanceRecordedEvent{
		RecordID:   record.ID,
		Employee:   record.Employee,
		Type:       record.Type,
		Date:       record.Date,
		Time:       record.Time,
		Office:     record.Office,
		HasSelfie:  record.SelfieURL != "",
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.PublishAttendanceRecorded(ctx, event); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("record_id", record.ID).Msg("Failed to publish attendance event")
	}
}
