package srtp

import "crypto/rand"

// SecureRandomBytes returns length cryptographically secure random
// bytes, the building block for generating master keys/salts outside
// of a DTLS-SRTP exporter (tests, out-of-band provisioning).
func SecureRandomBytes(length int) ([]byte, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// GenerateMasterKeyMaterial produces a fresh random master key/salt
// pair sized for policy.
func GenerateMasterKeyMaterial(policy Policy) (MasterKeyMaterial, error) {
	key, err := SecureRandomBytes(policy.EncKeyLen)
	if err != nil {
		return MasterKeyMaterial{}, err
	}
	salt, err := SecureRandomBytes(policy.SaltKeyLen)
	if err != nil {
		return MasterKeyMaterial{}, err
	}
	return MasterKeyMaterial{Key: key, Salt: salt}, nil
}
