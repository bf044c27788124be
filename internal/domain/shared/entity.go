package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries the identity and audit timestamps shared by every
// persisted record: ledger transactions, derived balances, ledger entries,
// reconciliations and variances all embed it. Field names follow gorm
// conventions (id, created_at, updated_at) so no tags are needed.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity mints a new identity with both timestamps set to now.
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch advances UpdatedAt after an in-place state transition, such as a
// dispute moving to review or a variance being resolved.
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}
