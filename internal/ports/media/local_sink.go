package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// UploadsPrefix is the URL path under which locally stored files are served.
const UploadsPrefix = "/uploads/"

// LocalSink writes images to a filesystem rooted at the upload directory.
type LocalSink struct {
	fs      afero.Fs
	baseURL string
}

// NewLocalSink creates a sink on fs. Returned references are baseURL +
// "/uploads/" + name; an empty baseURL yields host-relative paths.
func NewLocalSink(fs afero.Fs, baseURL string) *LocalSink {
	return &LocalSink{
		fs:      fs,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// NewLocalDiskSink roots a LocalSink at dir on the OS filesystem, creating it if needed.
func NewLocalDiskSink(dir, baseURL string) (*LocalSink, error) {
	if err := afero.NewOsFs().MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return NewLocalSink(afero.NewBasePathFs(afero.NewOsFs(), dir), baseURL), nil
}

func (s *LocalSink) Store(ctx context.Context, name string, content io.Reader, size int64, contentType string) (string, error) {
	clean := strings.TrimPrefix(path.Clean("/"+name), "/")
	if clean == "" {
		return "", fmt.Errorf("invalid upload name %q", name)
	}

	full := "/" + clean
	if err := s.fs.MkdirAll(path.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	f, err := s.fs.Create(full)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}

	written, err := io.Copy(f, content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = s.fs.Remove(full)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	log.Ctx(ctx).Debug().Str("name", clean).Int64("bytes", written).Msg("Stored upload on local disk")
	return s.baseURL + UploadsPrefix + escapePath(clean), nil
}

// FileSystem exposes the stored files for serving under UploadsPrefix.
// Directories are reported as missing so stored names cannot be listed.
func (s *LocalSink) FileSystem() http.FileSystem {
	return filesOnly{afero.NewHttpFs(s.fs).Dir("/")}
}

type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, os.ErrNotExist
	}
	return file, nil
}
