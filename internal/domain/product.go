package domain

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID    uuid.UUID
	Name  string
	Price Money

	CreatedAt time.Time
}
