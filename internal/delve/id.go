package delve

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// NewID returns a unique identifier for an entity or connection.
func NewID() string {
	return uuid.NewString()
}

// NewMapID returns a time-plus-random composite map identifier. The random
// tail makes collisions astronomically unlikely even for maps created in the
// same millisecond. A nil now defaults to time.Now.
func NewMapID(now func() time.Time) string {
	if now == nil {
		now = time.Now
	}
	return strconv.FormatInt(now().UnixMilli(), 36) + "-" + strconv.FormatInt(rand.Int63(), 36)
}
