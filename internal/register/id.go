package register

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a short identifier: the capitalised first two letters of
// template followed by the first eight hex digits of a random UUID, such as
// "En-1a2b3c4d".
func NewID(template string) string {
	prefix := "Id"
	if len(template) >= 2 {
		prefix = strings.ToUpper(template[:1]) + strings.ToLower(template[1:2])
	}
	return prefix + "-" + uuid.New().String()[:8]
}
