package srtp

import "fmt"

// ProtectionProfile is the 16-bit IANA identifier negotiated in the
// DTLS-SRTP use_srtp extension (RFC 5764 section 4.1.2). SrtpManager
// never negotiates this itself — that belongs to the DTLS handshake,
// out of scope here — it only turns an already-agreed identifier into
// a Policy.
type ProtectionProfile uint16

const (
	ProtectionProfileAes128CmHmacSha1_80 ProtectionProfile = 0x0001
	ProtectionProfileAes128CmHmacSha1_32 ProtectionProfile = 0x0002
	ProtectionProfileNullHmacSha1_80     ProtectionProfile = 0x0005
	ProtectionProfileNullHmacSha1_32     ProtectionProfile = 0x0006
)

func (p ProtectionProfile) String() string {
	switch p {
	case ProtectionProfileAes128CmHmacSha1_80:
		return "SRTP_AES128_CM_HMAC_SHA1_80"
	case ProtectionProfileAes128CmHmacSha1_32:
		return "SRTP_AES128_CM_HMAC_SHA1_32"
	case ProtectionProfileNullHmacSha1_80:
		return "SRTP_NULL_HMAC_SHA1_80"
	case ProtectionProfileNullHmacSha1_32:
		return "SRTP_NULL_HMAC_SHA1_32"
	default:
		return fmt.Sprintf("ProtectionProfile(0x%04x)", uint16(p))
	}
}

// PolicyForProtectionProfile builds the Policy implied by a negotiated
// protection profile identifier. Only the two mandatory-to-implement
// profiles and their NULL-cipher counterparts (useful for testing the
// authentication-only path) are recognized.
func PolicyForProtectionProfile(p ProtectionProfile) (Policy, error) {
	switch p {
	case ProtectionProfileAes128CmHmacSha1_80:
		return DefaultPolicyAes128CmHmacSha1_80(), nil
	case ProtectionProfileAes128CmHmacSha1_32:
		return DefaultPolicyAes128CmHmacSha1_32(), nil
	case ProtectionProfileNullHmacSha1_80:
		policy := DefaultPolicyAes128CmHmacSha1_80()
		policy.EncryptionKind = EncryptionNone
		return policy, nil
	case ProtectionProfileNullHmacSha1_32:
		policy := DefaultPolicyAes128CmHmacSha1_32()
		policy.EncryptionKind = EncryptionNone
		return policy, nil
	default:
		return Policy{}, fmt.Errorf("srtp: unsupported protection profile %s", p)
	}
}
