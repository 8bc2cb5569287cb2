package service

import (
	"sync"

	cryptoDomain "github.com/allisson/crypto-api/internal/crypto/domain"
	apperrors "github.com/allisson/crypto-api/internal/errors"
)

// maxNoncesPerKey is the NIST SP 800-38D limit on GCM invocations with random 96-bit nonces.
const maxNoncesPerKey = uint64(1) << 32

type nonceKey [cryptoDomain.NonceSize]byte

// nonceGuard remembers the most recent nonces in a fixed-size ring and counts every nonce issued.
// A random nonce only repeats if the entropy source is broken, so a hit here means the source can
// no longer be trusted.
type nonceGuard struct {
	mu    sync.Mutex
	seen  map[nonceKey]struct{}
	ring  []nonceKey
	next  int
	full  bool
	count uint64
	limit uint64
}

func newNonceGuard(window int, limit uint64) *nonceGuard {
	if window < 0 {
		window = 0
	}
	return &nonceGuard{
		seen:  make(map[nonceKey]struct{}, window),
		ring:  make([]nonceKey, window),
		limit: limit,
	}
}

// register records nonce, failing if it was seen within the window or the budget is spent.
func (g *nonceGuard) register(nonce []byte) error {
	var k nonceKey
	copy(k[:], nonce)

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.count >= g.limit {
		return apperrors.Wrapf(cryptoDomain.ErrNonceReuse, "key exhausted its budget of %d nonces", g.limit)
	}

	if len(g.ring) > 0 {
		if _, dup := g.seen[k]; dup {
			return cryptoDomain.ErrNonceReuse
		}

		if g.full {
			delete(g.seen, g.ring[g.next])
		}
		g.ring[g.next] = k
		g.seen[k] = struct{}{}
		g.next++
		if g.next == len(g.ring) {
			g.next = 0
			g.full = true
		}
	}

	g.count++
	return nil
}
