package actions

import (
	"context"

	"github.com/carson-networks/trackease/internal/storage"
)

// IAction is one unit of mutation. Perform runs inside a storage transaction
// owned by the operator; returning an error rolls it back.
type IAction interface {
	Name() string
	Perform(ctx context.Context, writer *storage.Writer) error
}
