package identity

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/vovakirdan/presence-server/internal/core"
)

// Session keys holding the identity.
const (
	KeyID   = "id"
	KeyNick = "nick"
)

// ErrSessionCorrupt is returned when the session holds a partial or malformed identity.
var ErrSessionCorrupt = errors.New("session corrupt")

// Session is a per-client key-value store that survives across requests.
type Session interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// Resolver maps sessions to stable identities.
type Resolver struct {
	names []string
}

// NewResolver creates a resolver drawing nicknames from names.
// An empty pool falls back to DefaultNames.
func NewResolver(names []string) *Resolver {
	if len(names) == 0 {
		names = DefaultNames
	}
	return &Resolver{names: names}
}

// Resolve returns the identity stored in s, creating and storing one on
// first contact. Calls after the first do not write to s.
func (r *Resolver) Resolve(s Session) (core.Member, error) {
	rawID, hasID := s.Get(KeyID)
	nick, hasNick := s.Get(KeyNick)

	switch {
	case hasID && hasNick:
		id, err := strconv.ParseUint(rawID, 10, 64)
		if err != nil {
			return core.Member{}, fmt.Errorf("%w: bad id: %v", ErrSessionCorrupt, err)
		}
		if nick == "" {
			return core.Member{}, fmt.Errorf("%w: empty nick", ErrSessionCorrupt)
		}
		return core.Member{ID: core.UserID(id), Nick: nick}, nil
	case hasID || hasNick:
		return core.Member{}, fmt.Errorf("%w: partial identity", ErrSessionCorrupt)
	}

	m, err := r.generate()
	if err != nil {
		return core.Member{}, err
	}
	s.Set(KeyID, m.ID.String())
	s.Set(KeyNick, m.Nick)
	return m, nil
}

func (r *Resolver) generate() (core.Member, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return core.Member{}, fmt.Errorf("generate id: %w", err)
	}

	idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(r.names))))
	if err != nil {
		return core.Member{}, fmt.Errorf("pick nick: %w", err)
	}

	return core.Member{
		ID:   core.UserID(binary.LittleEndian.Uint64(buf[:])),
		Nick: r.names[idx.Int64()],
	}, nil
}
