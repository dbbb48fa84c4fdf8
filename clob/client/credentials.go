package client

import (
	"sync/atomic"

	"github.com/w6g2000/polymarket-go-client/clob/types"
)

// credentialStore is a single atomically-replaceable slot for the API
// credential triple. Credentials are published as an immutable copy, so a
// reader concurrent with a rotation sees either the old or the new triple,
// never a mix.
type credentialStore struct {
	slot atomic.Pointer[types.ApiKeyCreds]
}

// Set publishes a copy of the credential triple.
func (s *credentialStore) Set(creds types.ApiKeyCreds) {
	s.slot.Store(&creds)
}

// Get returns the current triple, or nil when none has been set.
func (s *credentialStore) Get() *types.ApiKeyCreds {
	return s.slot.Load()
}

// Clear drops the stored credentials.
func (s *credentialStore) Clear() {
	s.slot.Store(nil)
}
