// Package metadata is the durable key/value store of the client. Each record
// is an opaque blob under a namespaced key such as "@lustless:auth-tokens";
// callers own its encoding.
package metadata

import (
	"context"
)

// Repository reads and writes single records. Get reports an absent key as
// (nil, nil) so callers can tell "nothing stored" from a failed read.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
