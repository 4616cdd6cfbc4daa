package numerology

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

// DefaultLength is the number of digits Generate produces by default.
const DefaultLength = 6

// Source is the randomness provider for generated inputs.
//
// Implementations must be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}

// NewSource returns a deterministic Source for the given seed.
func NewSource(seed int64) Source {
	return &lockedSource{rnd: rand.New(rand.NewSource(seed))}
}

// NewTimeSource returns a Source seeded from the wall clock.
func NewTimeSource() Source {
	return NewSource(time.Now().UnixNano())
}

// Generate returns length random decimal digits drawn from src.
// A non-positive length yields DefaultLength digits.
func Generate(src Source, length int) string {
	if length <= 0 {
		length = DefaultLength
	}
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(byte('0' + src.Intn(10)))
	}
	return b.String()
}
