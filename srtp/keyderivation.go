package srtp

// Key derivation function, RFC 3711 section 4.3. Session keys are
// pseudo-random output of AES in counter mode, keyed by the master
// key, with a per-label IV built from the master salt.

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
)

// Labels distinguish which of the three SRTP/SRTCP session keys a
// given derivation call is producing.
const (
	labelSrtpEncryption  byte = 0x00
	labelSrtpAuth        byte = 0x01
	labelSrtpSalt        byte = 0x02
	labelSrtcpEncryption byte = 0x03
	labelSrtcpAuth       byte = 0x04
	labelSrtcpSalt       byte = 0x05
)

// KeyDerivation runs the AES-CM PRF against a single master key/salt
// pair. Each BaseContext builds its own instance, so an RTP context and
// an RTCP context on the same master key do not share one.
type KeyDerivation struct {
	block cipher.Block
}

// NewKeyDerivation builds the PRF block cipher from the master key.
// The caller retains ownership of masterKey and is expected to wipe it
// once every session key it needs has been derived.
func NewKeyDerivation(masterKey []byte) (*KeyDerivation, error) {
	block, err := aes.NewCipher(masterKey)
	if err != nil {
		return nil, err
	}
	return &KeyDerivation{block: block}, nil
}

// deriveKeyID computes (label<<48 | index/kdr), or just label<<48 when
// kdr is 0 (re-derivation disabled), as a 7-byte big-endian value —
// wide enough to left-shift a 48-bit label/index pair without overflow.
func deriveKeyID(label byte, index uint64, kdr uint64) [7]byte {
	var keyID [7]byte
	keyID[0] = label
	if kdr != 0 {
		quotient := index / kdr
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], quotient)
		// quotient must fit in 48 bits; OR its low 6 bytes into keyID[1:7].
		copy(keyID[1:], buf[2:])
	}
	return keyID
}

// derive produces requestedLen bytes of PRF output for the given
// label, index and key derivation rate, per the IV construction in
// section 4.2 of this package's governing specification:
//
//	key_id   = (label << 48) | (index / kdr)   if kdr > 0
//	key_id   = label << 48                     if kdr = 0
//	iv[0:7]  = master_salt[0:7]
//	iv[7:14] = master_salt[7:14] XOR key_id
func (kd *KeyDerivation) derive(masterSalt []byte, label byte, index, kdr uint64, requestedLen int) []byte {
	keyID := deriveKeyID(label, index, kdr)

	var iv [16]byte
	copy(iv[0:7], masterSalt[0:7])
	for i := 0; i < 7; i++ {
		iv[7+i] = masterSalt[7+i] ^ keyID[i]
	}
	// iv[14:16] stay zero: the 112-bit salt is left-padded to a full
	// AES block.

	stream := cipher.NewCTR(kd.block, iv[:])
	out := make([]byte, requestedLen)
	// AES-CM as a PRF is just CTR-mode keystream with an all-zero
	// plaintext: XORKeyStream against zeros reproduces the keystream.
	stream.XORKeyStream(out, out)
	return out
}

// DeriveSessionKeys derives the (encKey, authKey, saltKey) triple for
// either the SRTP or SRTCP key set, selected via rtcp. authKeyLen of 0
// skips authentication-key derivation (AuthKind == AuthNone).
func (kd *KeyDerivation) DeriveSessionKeys(
	masterSalt []byte,
	index, kdr uint64,
	encKeyLen, authKeyLen, saltKeyLen int,
	rtcp bool,
) *SessionKeys {
	encLabel, authLabel, saltLabel := labelSrtpEncryption, labelSrtpAuth, labelSrtpSalt
	if rtcp {
		encLabel, authLabel, saltLabel = labelSrtcpEncryption, labelSrtcpAuth, labelSrtcpSalt
	}

	keys := &SessionKeys{
		EncKey:  kd.derive(masterSalt, encLabel, index, kdr, encKeyLen),
		SaltKey: kd.derive(masterSalt, saltLabel, index, kdr, saltKeyLen),
	}
	if authKeyLen > 0 {
		keys.AuthKey = kd.derive(masterSalt, authLabel, index, kdr, authKeyLen)
	}
	return keys
}
