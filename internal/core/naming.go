package core

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

const selfiePrefix = "selfies/"

// SelfieName derives a unique storage name from the submission time and the
// client's filename. Characters outside [A-Za-z0-9._-] become "_"; without a
// usable filename the name is fully synthetic.
func SelfieName(now time.Time, original string) string {
	base := sanitizeFilename(path.Base(strings.ReplaceAll(original, `\`, "/")))
	if strings.Trim(base, "._") == "" {
		base = uuid.NewString() + ".jpg"
	}
	return fmt.Sprintf("%s%d-%s", selfiePrefix, now.UnixMilli(), base)
}

func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, name)
}
