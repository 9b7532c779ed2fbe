package lib

import (
	"fmt"
	"sync"
)

// UniqueNamer hands out a distinct display name for each call: the first time a name is
// seen it is returned as-is, later repeats get a " (n)" suffix. Suffixed names are
// themselves reserved, so "B (2)" given as input never collides with a generated one.
type UniqueNamer struct {
	mu    *sync.Mutex
	seen  map[string]int
	taken Set[string]
}

func NewUniqueNamer() *UniqueNamer {
	return &UniqueNamer{
		mu:    &sync.Mutex{},
		seen:  make(map[string]int),
		taken: NewSet[string](),
	}
}

// Name returns a name derived from str that has not been returned before.
func (u *UniqueNamer) Name(str string) string {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.taken.Add(str) {
		u.seen[str] = 1
		return str
	}

	n := u.seen[str]
	if n < 1 {
		n = 1
	}
	for {
		n++
		candidate := fmt.Sprintf("%s (%d)", str, n)
		if u.taken.Add(candidate) {
			u.seen[str] = n
			return candidate
		}
	}
}
