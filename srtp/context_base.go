package srtp

import "github.com/heytribe/live-srtpcore/my"

// BaseContext holds the long-lived, per-SSRC state shared by RtpContext
// and RtcpContext: the master key material, the derived session keys,
// and the cipher/MAC engines built from them. RtpContext and
// RtcpContext each own a distinct BaseContext even when both streams
// share the same master key, since they derive under different labels
// (0x00-0x02 for SRTP, 0x03-0x05 for SRTCP) and re-key independently.
type BaseContext struct {
	SSRC   uint32
	Policy Policy

	isRTCP bool

	masterKey     MasterKeyMaterial
	keyDerivation *KeyDerivation
	sessionKeys   *SessionKeys
	keysDerived   bool

	cipher StreamCipher
	mac    MAC

	// kdr is the key derivation rate: 0 disables re-derivation,
	// otherwise session keys are re-derived every kdr packets.
	kdr uint64
}

// NewBaseContext builds a context for ssrc under policy, holding
// masterKey by reference. The caller transfers ownership of masterKey;
// BaseContext wipes its key once keys have been derived, and wipes the
// remainder (the salt) when the context is closed.
func NewBaseContext(ssrc uint32, policy Policy, masterKey MasterKeyMaterial, kdr uint64, isRTCP bool) (*BaseContext, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &BaseContext{
		SSRC:      ssrc,
		Policy:    policy,
		isRTCP:    isRTCP,
		masterKey: masterKey,
		kdr:       kdr,
	}, nil
}

// deriveKeys (re-)derives session keys at the given packet index and
// rebuilds the cipher/MAC engines from them. Called lazily on first
// use, and again whenever kdr != 0 and index % kdr == 0.
func (b *BaseContext) deriveKeys(index uint64) error {
	if b.keyDerivation == nil {
		kd, err := NewKeyDerivation(b.masterKey.Key)
		if err != nil {
			return err
		}
		b.keyDerivation = kd
	}

	if b.sessionKeys != nil {
		b.sessionKeys.Wipe()
	}
	b.sessionKeys = b.keyDerivation.DeriveSessionKeys(
		b.masterKey.Salt,
		index,
		b.kdr,
		b.Policy.EncKeyLen,
		b.Policy.AuthKeyLen,
		b.Policy.SaltKeyLen,
		b.isRTCP,
	)
	my.Assert(func() bool { return len(b.sessionKeys.EncKey) == b.Policy.EncKeyLen }, "derived encryption key has wrong length")
	my.Assert(func() bool { return len(b.sessionKeys.SaltKey) == b.Policy.SaltKeyLen }, "derived salt key has wrong length")

	cipher, err := NewStreamCipher(b.Policy.EncryptionKind, b.sessionKeys.EncKey)
	if err != nil {
		return err
	}
	mac, err := NewMAC(b.Policy.AuthKind, b.sessionKeys.AuthKey)
	if err != nil {
		return err
	}
	b.cipher = cipher
	b.mac = mac
	b.keysDerived = true

	// The master key is only needed to seed keyDerivation's block
	// cipher, which has already consumed it by now; wipe it. The master
	// salt is not consumed — derive() reads it again on every periodic
	// re-derivation triggered by a non-zero key derivation rate — so it
	// stays live until Close.
	b.masterKey.WipeKey()

	return nil
}

// ensureKeys derives keys on first use and re-derives every kdr
// packets, per section 4.2 of this package's governing specification.
func (b *BaseContext) ensureKeys(index uint64) error {
	if !b.keysDerived {
		return b.deriveKeys(index)
	}
	if b.kdr != 0 && index%b.kdr == 0 {
		return b.deriveKeys(index)
	}
	return nil
}

// Close wipes all derived key material. Safe to call more than once.
func (b *BaseContext) Close() {
	b.masterKey.Wipe()
	if b.sessionKeys != nil {
		b.sessionKeys.Wipe()
	}
}
