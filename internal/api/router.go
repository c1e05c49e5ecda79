package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"attendance.service/internal/api/handler"
	"attendance.service/internal/ports/media"
)

// NewRouter sets up the gorilla/mux router and defines all API routes.
// uploads may be nil when selfies are not stored locally.
func NewRouter(attendance *handler.AttendanceHandler, directory *handler.DirectoryHandler, uploads http.FileSystem) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/attendance", attendance.Submit).Methods(http.MethodPost)
	r.HandleFunc("/attendance", attendance.List).Methods(http.MethodGet)
	r.HandleFunc("/employees", directory.ListEmployees).Methods(http.MethodGet)
	r.HandleFunc("/offices", directory.ListOffices).Methods(http.MethodGet)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Service is operational."))
	}).Methods(http.MethodGet)

	if uploads != nil {
		r.PathPrefix(media.UploadsPrefix).
			Handler(http.StripPrefix(media.UploadsPrefix, http.FileServer(uploads))).
			Methods(http.MethodGet, http.MethodHead)
	}

	return r
}
