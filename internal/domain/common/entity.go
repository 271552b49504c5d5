// internal/domain/common/entity.go
package common

// BaseEntity carries the audit fields every backend record has.
type BaseEntity struct {
	ID        string  `json:"id"`
	CreatedAt string  `json:"createdAt,omitempty"`
	UpdatedAt string  `json:"updatedAt,omitempty"`
	UpdatedBy *string `json:"updatedBy,omitempty"`
}

// Identifier is implemented by every listable record.
type Identifier interface {
	GetID() string
}

func (b BaseEntity) GetID() string { return b.ID }
