// Package lock serializes work on the same organization or user across
// concurrent requests.
package lock

import (
	"context"
	"errors"
	"slices"
	"strconv"
)

// ErrTimeout is returned when a key stays held for longer than the wait budget.
var ErrTimeout = errors.New("timed out waiting for lock")

// Locker acquires every key or none. Keys are taken in sorted order so two
// callers asking for overlapping sets cannot deadlock.
type Locker interface {
	Acquire(ctx context.Context, keys ...string) (release func(), err error)
}

func OrgKey(id int64) string {
	return "org:" + strconv.FormatInt(id, 10)
}

func UserKey(id int64) string {
	return "user:" + strconv.FormatInt(id, 10)
}

// normalize sorts and de-duplicates keys.
func normalize(keys []string) []string {
	out := slices.Clone(keys)
	slices.Sort(out)
	return slices.Compact(out)
}
