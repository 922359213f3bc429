package srtp_test

import (
	"testing"

	"github.com/heytribe/live-srtpcore/srtp"
)

func TestGenerateMasterKeyMaterialLengths(t *testing.T) {
	policy := srtp.DefaultPolicyAes128CmHmacSha1_80()

	m, err := srtp.GenerateMasterKeyMaterial(policy)
	if err != nil {
		t.Fatalf("GenerateMasterKeyMaterial: %v", err)
	}
	if len(m.Key) != policy.EncKeyLen {
		t.Errorf("key length = %d, want %d", len(m.Key), policy.EncKeyLen)
	}
	if len(m.Salt) != policy.SaltKeyLen {
		t.Errorf("salt length = %d, want %d", len(m.Salt), policy.SaltKeyLen)
	}
}

func TestSecureRandomBytesAreNotAllZero(t *testing.T) {
	b, err := srtp.SecureRandomBytes(32)
	if err != nil {
		t.Fatalf("SecureRandomBytes: %v", err)
	}
	allZero := true
	for _, v := range b {
		if v != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		t.Fatal("32 random bytes came back all zero")
	}
}
