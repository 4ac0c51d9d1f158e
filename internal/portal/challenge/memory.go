package challenge

import (
	"context"
	"crypto/subtle"
	"strings"
	"sync"
	"time"
)

type memoryEntry struct {
	code    string
	expires time.Time
}

// MemoryIssuer keeps active codes in a map, the in-process analog of the
// portal's per-tab code store. Safe for concurrent use from independent
// sessions; same-subject operations are serialized by the mutex.
type MemoryIssuer struct {
	mu    sync.Mutex
	codes map[string]memoryEntry

	codeLength int
	ttl        time.Duration

	// now is a test seam.
	now func() time.Time
}

// NewMemoryIssuer constructs a MemoryIssuer. Non-positive parameters fall
// back to the package defaults.
func NewMemoryIssuer(codeLength int, ttl time.Duration) *MemoryIssuer {
	if codeLength <= 0 {
		codeLength = DefaultCodeLength
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryIssuer{
		codes:      make(map[string]memoryEntry),
		codeLength: codeLength,
		ttl:        ttl,
		now:        time.Now,
	}
}

func (i *MemoryIssuer) Issue(_ context.Context, subject string) (string, error) {
	code, err := GenerateCode(i.codeLength)
	if err != nil {
		return "", err
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	i.codes[subject] = memoryEntry{code: code, expires: i.now().Add(i.ttl)}
	return code, nil
}

func (i *MemoryIssuer) Redeem(_ context.Context, subject, suppliedCode string) (bool, error) {
	supplied := strings.TrimSpace(suppliedCode)

	i.mu.Lock()
	defer i.mu.Unlock()

	entry, ok := i.codes[subject]
	if !ok {
		return false, nil
	}
	if i.now().After(entry.expires) {
		delete(i.codes, subject)
		return false, nil
	}
	if subtle.ConstantTimeCompare([]byte(entry.code), []byte(supplied)) != 1 {
		return false, nil
	}

	delete(i.codes, subject)
	return true, nil
}
