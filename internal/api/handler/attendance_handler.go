package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"attendance.service/internal/core/model"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
)

const (
	selfieField = "selfie"

	// Parts beyond this size are spooled to temporary files.
	multipartMemory = 8 << 20
)

type AttendanceService interface {
	Submit(ctx context.Context, sub model.Submission) (*model.AttendanceRecord, error)
	Query(ctx context.Context, filter model.AttendanceFilter) ([]model.AttendanceRecord, error)
}

type AttendanceHandler struct {
	Service    AttendanceService
	Projection Projection
	// MaxBodyBytes caps submission bodies; zero means no limit.
	MaxBodyBytes int64
}

// Submit handles POST /attendance.
func (h *AttendanceHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if h.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxBodyBytes)
	}

	sub, cleanup, err := decodeSubmission(r)
	if err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("Invalid attendance submission")
		writeJSON(w, r, http.StatusBadRequest, submitResponse{Success: false, Error: "Invalid request body"})
		return
	}
	defer cleanup()

	if _, err := h.Service.Submit(r.Context(), sub); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("employee", sub.Employee).Msg("Error in POST /attendance")
		writeJSON(w, r, http.StatusInternalServerError, submitResponse{Success: false, Error: "Internal server error"})
		return
	}

	writeJSON(w, r, http.StatusOK, submitResponse{Success: true, Message: "Attendance recorded successfully."})
}

// List handles GET /attendance?employee=&date=.
func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.AttendanceFilter{
		Employee: q.Get("employee"),
		Date:     q.Get("date"),
	}

	records, err := h.Service.Query(r.Context(), filter)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Error in GET /attendance")
		writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "Failed to fetch attendance details"})
		return
	}

	writeJSON(w, r, http.StatusOK, h.Projection.Render(records))
}

// decodeSubmission reads a multipart, urlencoded or JSON body. A request
// without a recognised body yields an empty submission.
func decodeSubmission(r *http.Request) (model.Submission, func(), error) {
	noop := func() {}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return model.Submission{}, noop, nil
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return model.Submission{}, noop, fmt.Errorf("parse content type: %w", err)
	}

	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return model.Submission{}, noop, fmt.Errorf("parse multipart form: %w", err)
		}
		sub := submissionFromForm(r.PostFormValue)

		file, header, err := r.FormFile(selfieField)
		switch {
		case errors.Is(err, http.ErrMissingFile):
			return sub, func() { _ = r.MultipartForm.RemoveAll() }, nil
		case err != nil:
			_ = r.MultipartForm.RemoveAll()
			return model.Submission{}, noop, fmt.Errorf("read selfie: %w", err)
		}

		sub.Selfie = attachmentFrom(file, header)
		return sub, func() {
			file.Close()
			_ = r.MultipartForm.RemoveAll()
		}, nil

	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return model.Submission{}, noop, fmt.Errorf("parse form: %w", err)
		}
		return submissionFromForm(r.PostFormValue), noop, nil

	case "application/json":
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			return model.Submission{}, noop, fmt.Errorf("decode json: %w", err)
		}
		return submissionFromForm(func(key string) string { return cast.ToString(body[key]) }), noop, nil

	default:
		return model.Submission{}, noop, nil
	}
}

func submissionFromForm(get func(string) string) model.Submission {
	return model.Submission{
		Employee:  get("employee"),
		Type:      get("type"),
		Date:      get("date"),
		Time:      get("time"),
		Latitude:  get("latitude"),
		Longitude: get("longitude"),
		Location:  get("location"),
		Office:    get("office"),
	}
}

func attachmentFrom(file multipart.File, header *multipart.FileHeader) *model.Attachment {
	return &model.Attachment{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	}
}
