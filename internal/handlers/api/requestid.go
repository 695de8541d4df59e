package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewRequestID returns an opaque id of the form req_<unix-millis>_<9 hex chars>.
// Uniqueness is best effort.
func NewRequestID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("req_%d_%s", now.UnixMilli(), suffix)
}
