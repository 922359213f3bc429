package srtp

// Stream ciphers, RFC 3711 section 4.1. Two block-cipher families
// (AES, Twofish) each support two modes (counter mode "CM" and f8
// mode "F8"); this file builds the four resulting StreamCipher
// implementations on top of crypto/aes, crypto/cipher and
// golang.org/x/crypto/twofish.

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"

	"golang.org/x/crypto/twofish"
)

// StreamCipher XORs a keystream, derived from a per-packet IV, against
// a payload in place. Both encryption and decryption are the same
// operation, as with any stream cipher.
type StreamCipher interface {
	Encrypt(iv, payload []byte)
}

// newBlockCipher builds the underlying block cipher for kind.
func newBlockCipher(kind EncryptionKind, key []byte) (cipher.Block, error) {
	switch kind {
	case EncryptionAesCm, EncryptionAesF8:
		return aes.NewCipher(key)
	case EncryptionTwofishCm, EncryptionTwofishF8:
		return twofish.NewCipher(key)
	default:
		return nil, ErrUnsupportedKind
	}
}

// NewStreamCipher builds the StreamCipher named by kind, keyed with
// encKey. F8 mode derives its own masked-IV cipher from encKey itself,
// per RFC 3711 section 4.1.2, so no extra key material is needed.
func NewStreamCipher(kind EncryptionKind, encKey []byte) (StreamCipher, error) {
	switch kind {
	case EncryptionNone:
		return nullCipher{}, nil
	case EncryptionAesCm, EncryptionTwofishCm:
		block, err := newBlockCipher(kind, encKey)
		if err != nil {
			return nil, err
		}
		return &cmCipher{block: block}, nil
	case EncryptionAesF8, EncryptionTwofishF8:
		return newF8Cipher(kind, encKey)
	default:
		return nil, ErrUnsupportedKind
	}
}

type nullCipher struct{}

func (nullCipher) Encrypt(iv, payload []byte) {}

// cmCipher is AES-CM / Twofish-CM: the block cipher run in counter
// mode, directly usable as a stream cipher via crypto/cipher.
type cmCipher struct {
	block cipher.Block
}

func (c *cmCipher) Encrypt(iv, payload []byte) {
	stream := cipher.NewCTR(c.block, iv)
	stream.XORKeyStream(payload, payload)
}

// f8Mask is XORed into encKey to derive the key for the IV-masking
// cipher instance, per RFC 3711 section 4.1.2: 0x55 repeating for the
// key's first half, 0xFF for the second. It is built lazily to the
// required length since AES and Twofish keys used here are 16 bytes.
func f8Mask(n int) []byte {
	m := make([]byte, n)
	half := n / 2
	for i := 0; i < half; i++ {
		m[i] = 0x55
	}
	for i := half; i < n; i++ {
		m[i] = 0xff
	}
	return m
}

// f8Cipher implements f8 mode. f8 is a feedback mode derived from OFB:
// each keystream block folds in the block index and the previous
// keystream block, so unlike CM it cannot be parallelized or sought
// into at an arbitrary offset — it must always be run from block 0 of
// the packet. There is no f8 implementation in the standard library or
// the wider Go ecosystem, so this is built directly from the governing
// RFC's pseudocode on top of the plain block cipher.
type f8Cipher struct {
	block   cipher.Block // E(k_e, .)
	ivBlock cipher.Block // E(k_e XOR m, .), masks the packet IV once
}

func newF8Cipher(kind EncryptionKind, encKey []byte) (*f8Cipher, error) {
	block, err := newBlockCipher(kind, encKey)
	if err != nil {
		return nil, err
	}

	mask := f8Mask(len(encKey))
	maskedKey := make([]byte, len(encKey))
	for i := range encKey {
		maskedKey[i] = encKey[i] ^ mask[i]
	}
	ivBlock, err := newBlockCipher(kind, maskedKey)
	if err != nil {
		return nil, err
	}

	return &f8Cipher{block: block, ivBlock: ivBlock}, nil
}

// Encrypt runs f8 mode over payload starting from IV iv, used exactly
// as the caller built it. The SRTCP path passes its counter-mode IV,
// which does not include the E bit.
func (c *f8Cipher) Encrypt(iv, payload []byte) {
	blockSize := c.block.BlockSize()

	ivPrime := make([]byte, blockSize)
	c.ivBlock.Encrypt(ivPrime, iv)

	prevS := make([]byte, blockSize) // S(-1) = 0
	var jBuf [8]byte

	for offset := 0; offset < len(payload); offset += blockSize {
		j := uint64(offset / blockSize)
		binary.BigEndian.PutUint64(jBuf[:], j)

		// input = IV' XOR j XOR S(j-1), j left-padded with zeros to
		// the block size.
		input := make([]byte, blockSize)
		copy(input, ivPrime)
		for i := 0; i < blockSize; i++ {
			input[i] ^= prevS[i]
		}
		for i := 0; i < len(jBuf) && i < blockSize; i++ {
			input[blockSize-len(jBuf)+i] ^= jBuf[i]
		}

		s := make([]byte, blockSize)
		c.block.Encrypt(s, input)

		end := offset + blockSize
		if end > len(payload) {
			end = len(payload)
		}
		for i := offset; i < end; i++ {
			payload[i] ^= s[i-offset]
		}
		prevS = s
	}
}
