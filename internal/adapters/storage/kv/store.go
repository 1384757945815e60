// Package kv provides the key-value persistence layer. All application state
// is stored as JSON blobs under a handful of well-known keys; collection
// stores sit on top and own the encoding.
package kv

import "context"

// Well-known storage keys. Changing one orphans previously stored data, so
// they are fixed for the life of a database file.
const (
	KeyTherapists  = "app:therapists"
	KeyTherapies   = "app:therapies"
	KeyActivities  = "app:activities"
	KeyCurrentUser = "app:current_user"
)

// Store is the key-value contract all persistence flows through.
// Get reports found=false for an absent key rather than an error; callers
// distinguish "never written" from a real storage failure.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
