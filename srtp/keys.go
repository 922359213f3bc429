package srtp

import "github.com/heytribe/live-srtpcore/my"

// MasterKeyMaterial holds the long-term key/salt pair handed down from
// the DTLS-SRTP exporter. The key is consumed exactly once, to seed
// KeyDerivation, and BaseContext wipes it right after the first
// session-key derivation. The salt is not
// consumed once — derive() needs it on every (re-)derivation, including
// every periodic re-derivation triggered by a non-zero key derivation
// rate — so it stays live for the context's lifetime and is only wiped
// on Close.
type MasterKeyMaterial struct {
	Key  []byte
	Salt []byte
}

// WipeKey overwrites only the master key, leaving the master salt
// intact. Called once the key has seeded KeyDerivation's block cipher
// and is no longer needed.
func (m *MasterKeyMaterial) WipeKey() {
	my.Zeroize(m.Key)
}

// Wipe overwrites both the master key and master salt. Safe to call
// more than once. Call only when the context is being torn down, never
// between re-derivations.
func (m *MasterKeyMaterial) Wipe() {
	my.Zeroize(m.Key)
	my.Zeroize(m.Salt)
}

// SessionKeys holds the per-context keys derived from the master key
// by KeyDerivation: the cipher key, the MAC key (nil when the policy's
// AuthKind is AuthNone) and the salt used to build per-packet IVs.
type SessionKeys struct {
	EncKey  []byte
	AuthKey []byte
	SaltKey []byte
}

// Wipe overwrites all three session keys. Called when a context is
// destroyed or when re-deriving keys ahead of the next derivation.
func (s *SessionKeys) Wipe() {
	my.Zeroize(s.EncKey)
	my.Zeroize(s.AuthKey)
	my.Zeroize(s.SaltKey)
}
