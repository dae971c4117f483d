package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID gera "<prefixo>_<epoch ms>_<sufixo aleatório>". A unicidade é de melhor esforço.
func NewID(prefix string, t time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%s_%d_%s", prefix, t.UnixMilli(), suffix)
}
