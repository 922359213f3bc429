package srtp_test

import (
	"bytes"
	"testing"

	"github.com/heytribe/live-srtpcore/srtp"
)

func fixedMasterKeyAndSalt() ([]byte, []byte) {
	key := make([]byte, 16)
	salt := make([]byte, 14)
	for i := range key {
		key[i] = byte(i + 1)
	}
	for i := range salt {
		salt[i] = byte(0xe0 + i)
	}
	return key, salt
}

// TestKeyDerivationIsDeterministic checks the core PRF property the
// rest of this package leans on: the same (master key, master salt,
// index, kdr) always derives the same session keys.
func TestKeyDerivationIsDeterministic(t *testing.T) {
	masterKey, masterSalt := fixedMasterKeyAndSalt()

	kd1, err := srtp.NewKeyDerivation(masterKey)
	if err != nil {
		t.Fatalf("NewKeyDerivation: %v", err)
	}
	kd2, err := srtp.NewKeyDerivation(masterKey)
	if err != nil {
		t.Fatalf("NewKeyDerivation: %v", err)
	}

	k1 := kd1.DeriveSessionKeys(masterSalt, 42, 0, 16, 20, 14, false)
	k2 := kd2.DeriveSessionKeys(masterSalt, 42, 0, 16, 20, 14, false)

	if !bytes.Equal(k1.EncKey, k2.EncKey) || !bytes.Equal(k1.AuthKey, k2.AuthKey) || !bytes.Equal(k1.SaltKey, k2.SaltKey) {
		t.Fatal("identical inputs produced different session keys")
	}
}

// TestKeyDerivationKeyLengths checks each derived key comes back at
// the requested length, including the zero-length (auth disabled)
// case.
func TestKeyDerivationKeyLengths(t *testing.T) {
	masterKey, masterSalt := fixedMasterKeyAndSalt()
	kd, err := srtp.NewKeyDerivation(masterKey)
	if err != nil {
		t.Fatalf("NewKeyDerivation: %v", err)
	}

	keys := kd.DeriveSessionKeys(masterSalt, 0, 0, 16, 0, 14, false)
	if len(keys.EncKey) != 16 {
		t.Errorf("enc key length = %d, want 16", len(keys.EncKey))
	}
	if len(keys.SaltKey) != 14 {
		t.Errorf("salt key length = %d, want 14", len(keys.SaltKey))
	}
	if keys.AuthKey != nil {
		t.Errorf("auth key should be nil when authKeyLen=0, got %d bytes", len(keys.AuthKey))
	}
}

// TestKeyDerivationSrtpVsSrtcpDiffer checks that SRTP and SRTCP
// derivation, sharing a master key but different labels, never
// collide on the same session key.
func TestKeyDerivationSrtpVsSrtcpDiffer(t *testing.T) {
	masterKey, masterSalt := fixedMasterKeyAndSalt()
	kd, err := srtp.NewKeyDerivation(masterKey)
	if err != nil {
		t.Fatalf("NewKeyDerivation: %v", err)
	}

	rtp := kd.DeriveSessionKeys(masterSalt, 0, 0, 16, 20, 14, false)
	rtcp := kd.DeriveSessionKeys(masterSalt, 0, 0, 16, 20, 14, true)

	if bytes.Equal(rtp.EncKey, rtcp.EncKey) {
		t.Fatal("SRTP and SRTCP encryption keys must differ under distinct labels")
	}
}

// TestKeyDerivationRespectsRate checks that re-derivation only kicks
// in at multiples of kdr; two indices in the same kdr bucket derive
// identical keys, while indices in different buckets differ.
func TestKeyDerivationRespectsRate(t *testing.T) {
	masterKey, masterSalt := fixedMasterKeyAndSalt()
	kd, err := srtp.NewKeyDerivation(masterKey)
	if err != nil {
		t.Fatalf("NewKeyDerivation: %v", err)
	}

	const kdr = 16

	same1 := kd.DeriveSessionKeys(masterSalt, 0, kdr, 16, 20, 14, false)
	same2 := kd.DeriveSessionKeys(masterSalt, 15, kdr, 16, 20, 14, false)
	if !bytes.Equal(same1.EncKey, same2.EncKey) {
		t.Fatal("indices within the same kdr bucket must derive identical keys")
	}

	different := kd.DeriveSessionKeys(masterSalt, 16, kdr, 16, 20, 14, false)
	if bytes.Equal(same1.EncKey, different.EncKey) {
		t.Fatal("indices in different kdr buckets must derive different keys")
	}
}
