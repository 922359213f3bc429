package srtp

import (
	"encoding/binary"

	"github.com/heytribe/live-srtpcore/my"
)

// RtpContext is the per-SSRC SRTP state machine for a single media
// stream, in one direction. A sending endpoint and a receiving
// endpoint on the same SSRC each hold their own RtpContext; they
// agree on the master key material but advance their index state
// independently.
type RtpContext struct {
	base *BaseContext

	ssrc     uint32
	isSender bool

	roc            uint32
	sL             uint16
	seqInitialized bool

	replayWindow  ReplayWindow
	replayEnabled bool

	// guessedROC is transient, valid only during a single Transform
	// or ReverseTransform call, between guessIndex and update.
	guessedROC uint32
}

// NewRtpContext builds an RtpContext over base, which must already
// carry the stream's Policy and master key material.
func NewRtpContext(base *BaseContext, isSender bool, replayEnabled bool) *RtpContext {
	return &RtpContext{
		base:          base,
		ssrc:          base.SSRC,
		isSender:      isSender,
		replayEnabled: replayEnabled,
	}
}

// guessIndex estimates the 48-bit packet index for a received
// sequence number, per RFC 3711 section 3.3.1, and records the
// implied ROC in c.guessedROC as a side effect for the caller to
// commit (or discard) later in the same call.
func (c *RtpContext) guessIndex(seq uint16) uint64 {
	guessedROC := c.roc

	if !c.seqInitialized {
		c.guessedROC = guessedROC
		return uint64(guessedROC)<<16 | uint64(seq)
	}

	switch {
	case c.sL < 32768:
		if int32(seq)-int32(c.sL) > 32768 {
			guessedROC = c.roc - 1
		}
	default:
		if int32(c.sL)-32768 > int32(seq) {
			guessedROC = c.roc + 1
		}
	}

	c.guessedROC = guessedROC
	return uint64(guessedROC)<<16 | uint64(seq)
}

// replayCheck reports whether guessedIndex would be accepted against
// the committed (roc, s_l) state, per section 4.3.5. It never mutates
// state.
func (c *RtpContext) replayCheck(guessedIndex uint64) error {
	if !c.replayEnabled {
		return nil
	}
	return c.replayWindow.Check(guessedIndex)
}

// update commits seq/guessedIndex into (roc, s_l) and the replay
// window, per section 4.3.6. Only ever called after successful
// authentication (or, for a sender, after local encryption).
func (c *RtpContext) update(seq uint16, guessedIndex uint64) {
	c.replayWindow.Update(guessedIndex)

	rocBefore := c.roc
	switch {
	case c.guessedROC == c.roc:
		if seq > c.sL || !c.seqInitialized {
			c.sL = seq
		}
	case c.guessedROC == c.roc+1:
		c.sL = seq
		c.roc = c.guessedROC
	}
	my.Assert(func() bool { return c.roc >= rocBefore }, "rollover counter must never decrease")
	c.seqInitialized = true
}

// processPayload encrypts or decrypts payload in place, dispatching
// on the context's EncryptionKind, per section 4.3.4.
func (c *RtpContext) processPayload(header, payload []byte, index uint64, guessedROC uint32) error {
	switch c.base.Policy.EncryptionKind {
	case EncryptionNone:
		return nil
	case EncryptionAesCm, EncryptionTwofishCm:
		iv := c.cmIV(index)
		c.base.cipher.Encrypt(iv, payload)
		return nil
	case EncryptionAesF8, EncryptionTwofishF8:
		iv := f8IV(header, guessedROC)
		c.base.cipher.Encrypt(iv, payload)
		return nil
	default:
		return ErrUnsupportedKind
	}
}

// cmIV builds the 16-byte counter-mode IV for index, per section
// 4.3.4: the session salt XORed with the SSRC and packet index in
// fixed byte ranges, left-padded with two zero bytes.
func (c *RtpContext) cmIV(index uint64) []byte {
	salt := c.base.sessionKeys.SaltKey
	var iv [16]byte
	copy(iv[0:4], salt[0:4])

	var ssrcBuf [4]byte
	binary.BigEndian.PutUint32(ssrcBuf[:], c.ssrc)
	for i := 0; i < 4; i++ {
		iv[4+i] = salt[4+i] ^ ssrcBuf[i]
	}

	var idxBuf [8]byte
	binary.BigEndian.PutUint64(idxBuf[:], index)
	for i := 0; i < 6; i++ {
		iv[8+i] = salt[8+i] ^ idxBuf[2+i]
	}
	// iv[14:16] stay zero.
	return iv[:]
}

// f8IV builds the f8-mode IV: the first 12 bytes of the RTP header
// with byte 0 zeroed, followed by the big-endian guessed ROC, per
// section 4.3.4.
func f8IV(header []byte, guessedROC uint32) []byte {
	var iv [16]byte
	copy(iv[0:12], header[0:12])
	iv[0] = 0
	binary.BigEndian.PutUint32(iv[12:16], guessedROC)
	return iv[:]
}

// authenticatedPortion builds header‖payload‖big_endian(roc), the
// byte sequence covered by the SRTP auth tag. roc here is the ROC of
// the packet's own index, i.e. the guessed (not yet committed) roc on
// both the sending and the receiving side.
func authenticatedPortion(header, payload []byte, roc uint32) []byte {
	buf := make([]byte, 0, len(header)+len(payload)+4)
	buf = append(buf, header...)
	buf = append(buf, payload...)
	return putUint32BigEndian(buf, roc)
}

// Transform is the sender path, section 4.3.1: encrypts packet's
// payload in place and appends the auth tag, returning the resulting
// SRTP packet. packet must be a full RTP packet (header + payload);
// the returned slice may alias packet's backing array.
func (c *RtpContext) Transform(packet []byte) ([]byte, error) {
	headerLen, err := rtpHeaderLen(packet)
	if err != nil {
		return nil, err
	}
	header := packet[:headerLen]
	payload := packet[headerLen:]
	seq := rtpSeq(header)

	if !c.seqInitialized {
		c.sL = seq
		c.seqInitialized = true
	}

	guessedIndex := c.guessIndex(seq)
	if c.roc == ^uint32(0) && c.guessedROC == 0 {
		return nil, newError(ErrKindIndexOverflow, "rtp rollover counter wrapped, re-key required")
	}
	if err := c.replayCheck(guessedIndex); err != nil {
		// A sender re-deriving its own state inconsistently is a
		// programming error, not a wire condition.
		return nil, newError(ErrKindKeyNotDerived, "sender replay-check failed: "+err.Error())
	}

	if err := c.base.ensureKeys(guessedIndex); err != nil {
		return nil, err
	}

	if err := c.processPayload(header, payload, guessedIndex, c.guessedROC); err != nil {
		return nil, err
	}

	out := packet
	if c.base.Policy.AuthKind != AuthNone {
		authed := authenticatedPortion(header, payload, c.guessedROC)
		tag := c.base.mac.Tag(authed, c.base.Policy.AuthTagLen)
		out = append(out, tag...)
	}

	c.update(seq, guessedIndex)
	return out, nil
}

// ReverseTransform is the receiver path, section 4.3.2. It mutates
// context state only on full acceptance; every rejection path leaves
// the context exactly as it found it, except for the documented
// was-just-initialized rollback.
func (c *RtpContext) ReverseTransform(packet []byte) ([]byte, error) {
	headerLen, err := rtpHeaderLen(packet)
	if err != nil {
		return nil, err
	}

	tagLen := c.base.Policy.AuthTagLen
	if c.base.Policy.AuthKind == AuthNone {
		tagLen = 0
	}
	if len(packet) < headerLen+tagLen {
		return nil, ErrPacketTooShort
	}

	header := packet[:headerLen]
	body := packet[headerLen : len(packet)-tagLen]
	tag := packet[len(packet)-tagLen:]

	seq := rtpSeq(header)

	wasJustInitialized := false
	if !c.seqInitialized {
		c.sL = seq
		c.seqInitialized = true
		wasJustInitialized = true
	}

	guessedIndex := c.guessIndex(seq)

	if err := c.replayCheck(guessedIndex); err != nil {
		if wasJustInitialized {
			c.seqInitialized = false
			c.sL = 0
		}
		return nil, err
	}

	if err := c.base.ensureKeys(guessedIndex); err != nil {
		return nil, err
	}

	if c.base.Policy.AuthKind != AuthNone {
		authed := authenticatedPortion(header, body, c.guessedROC)
		if !c.base.mac.Verify(authed, tag) {
			if wasJustInitialized {
				c.seqInitialized = false
				c.sL = 0
			}
			return nil, ErrAuthFailed
		}
	}

	if err := c.processPayload(header, body, guessedIndex, c.guessedROC); err != nil {
		return nil, err
	}

	c.update(seq, guessedIndex)

	out := make([]byte, 0, len(header)+len(body))
	out = append(out, header...)
	out = append(out, body...)
	return out, nil
}
