package srtp_test

import (
	"bytes"
	"testing"

	"github.com/heytribe/live-srtpcore/srtp"
)

func TestStreamCipherAesCmRoundTrip(t *testing.T) {
	key := make([]byte, 16)
	for i := range key {
		key[i] = byte(i)
	}
	iv := make([]byte, 16)
	for i := range iv {
		iv[i] = byte(0xa0 + i)
	}

	cipher, err := srtp.NewStreamCipher(srtp.EncryptionAesCm, key)
	if err != nil {
		t.Fatalf("NewStreamCipher: %v", err)
	}

	plaintext := []byte("the quick brown fox jumps over the lazy dog")
	buf := append([]byte{}, plaintext...)

	cipher.Encrypt(append([]byte{}, iv...), buf)
	if bytes.Equal(buf, plaintext) {
		t.Fatal("ciphertext equals plaintext, encryption is a no-op")
	}

	cipher.Encrypt(append([]byte{}, iv...), buf)
	if !bytes.Equal(buf, plaintext) {
		t.Fatalf("decrypt with same IV did not recover plaintext:\n got  %q\n want %q", buf, plaintext)
	}
}

func TestStreamCipherAesF8RoundTrip(t *testing.T) {
	key := make([]byte, 16)
	for i := range key {
		key[i] = byte(i + 1)
	}
	iv := make([]byte, 16)
	for i := range iv {
		iv[i] = byte(0x10 + i)
	}

	cipher, err := srtp.NewStreamCipher(srtp.EncryptionAesF8, key)
	if err != nil {
		t.Fatalf("NewStreamCipher: %v", err)
	}

	plaintext := make([]byte, 37) // spans more than two AES blocks
	for i := range plaintext {
		plaintext[i] = byte(i * 3)
	}
	buf := append([]byte{}, plaintext...)

	cipher.Encrypt(append([]byte{}, iv...), buf)
	if bytes.Equal(buf, plaintext) {
		t.Fatal("ciphertext equals plaintext, encryption is a no-op")
	}

	cipher.Encrypt(append([]byte{}, iv...), buf)
	if !bytes.Equal(buf, plaintext) {
		t.Fatalf("decrypt with same IV did not recover plaintext:\n got  %x\n want %x", buf, plaintext)
	}
}

func TestStreamCipherNoneIsNoOp(t *testing.T) {
	cipher, err := srtp.NewStreamCipher(srtp.EncryptionNone, nil)
	if err != nil {
		t.Fatalf("NewStreamCipher: %v", err)
	}

	data := []byte("unchanged")
	original := append([]byte{}, data...)
	cipher.Encrypt(make([]byte, 16), data)

	if !bytes.Equal(data, original) {
		t.Fatalf("EncryptionNone mutated data: got %q, want %q", data, original)
	}
}
