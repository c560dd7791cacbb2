// Package memory holds in-memory implementations of the domain
// repositories. They back the service and handler tests and keep the
// same error semantics as the postgres implementations.
package memory

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/huzi29/crmsystemdesign/internal/domain"
)

func notFound(entity, id string) error {
	return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
}

func stamp() time.Time { return time.Now().UTC() }

func newID() string { return uuid.NewString() }
