package srtp

// EncryptionKind selects the block-cipher mode used to protect the
// RTP/RTCP payload. See RFC 3711 section 4.1.
type EncryptionKind int

const (
	EncryptionNone EncryptionKind = iota
	EncryptionAesCm
	EncryptionAesF8
	EncryptionTwofishCm
	EncryptionTwofishF8
)

func (k EncryptionKind) String() string {
	switch k {
	case EncryptionNone:
		return "none"
	case EncryptionAesCm:
		return "aes-cm"
	case EncryptionAesF8:
		return "aes-f8"
	case EncryptionTwofishCm:
		return "twofish-cm"
	case EncryptionTwofishF8:
		return "twofish-f8"
	default:
		return "unknown"
	}
}

// AuthKind selects the keyed MAC used to authenticate the packet. See
// RFC 3711 section 4.2.
type AuthKind int

const (
	AuthNone AuthKind = iota
	AuthHmacSha1
	AuthSkein
)

func (k AuthKind) String() string {
	switch k {
	case AuthNone:
		return "none"
	case AuthHmacSha1:
		return "hmac-sha1"
	case AuthSkein:
		return "skein"
	default:
		return "unknown"
	}
}

// Policy is the immutable, negotiated description of a cipher suite:
// which algorithms are in play and how long their keys, salts and tags
// are. It never changes once built and is safe to share across every
// context derived from the same DTLS-SRTP negotiation.
type Policy struct {
	EncryptionKind EncryptionKind
	AuthKind       AuthKind
	EncKeyLen      int
	AuthKeyLen     int
	SaltKeyLen     int
	AuthTagLen     int
	RtcpAuthTagLen int
}

// Validate checks the invariant tying AuthKind to AuthTagLen: with no
// authentication there must be no tag on the wire.
func (p Policy) Validate() error {
	if p.AuthKind == AuthNone && (p.AuthTagLen != 0 || p.RtcpAuthTagLen != 0) {
		return newError(ErrKindKeyNotDerived, "policy: auth_kind=None requires auth_tag_len=0")
	}
	return nil
}

// DefaultPolicyAes128CmHmacSha1_80 returns the mandatory-to-implement
// SRTP_AES128_CM_HMAC_SHA1_80 suite: AES-128 counter mode encryption,
// HMAC-SHA1 authentication truncated to an 80-bit tag for RTP and a
// full 80-bit tag for RTCP as well.
func DefaultPolicyAes128CmHmacSha1_80() Policy {
	return Policy{
		EncryptionKind: EncryptionAesCm,
		AuthKind:       AuthHmacSha1,
		EncKeyLen:      16,
		AuthKeyLen:     20,
		SaltKeyLen:     14,
		AuthTagLen:     10,
		RtcpAuthTagLen: 10,
	}
}

// DefaultPolicyAes128CmHmacSha1_32 is the same suite with the RTP auth
// tag truncated to 32 bits instead of 80; RTCP keeps the full 80-bit
// tag, as mandated by RFC 3711 section 7.5.
func DefaultPolicyAes128CmHmacSha1_32() Policy {
	p := DefaultPolicyAes128CmHmacSha1_80()
	p.AuthTagLen = 4
	return p
}
