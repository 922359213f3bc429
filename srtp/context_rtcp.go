package srtp

import "encoding/binary"

// RtcpContext is the per-SSRC SRTCP state machine, section 4.4. Unlike
// RtpContext it never reconstructs an index from a 16-bit wrapping
// sequence number — SRTCP carries its 31-bit index explicitly on the
// wire, alongside a single E bit marking whether the packet is
// encrypted, so there is nothing to guess and no ROC to track.
type RtcpContext struct {
	base *BaseContext

	ssrc     uint32
	isSender bool

	// index is the next 31-bit SRTCP index to send (sender), or one
	// past the highest index accepted so far (receiver).
	index         uint32
	replayWindow  ReplayWindow
	replayEnabled bool
}

const (
	rtcpFixedHeaderLen = 8
	srtcpIndexLen      = 4 // 1 E bit + 31-bit index, big-endian
	srtcpEBit          = uint32(1) << 31
)

// NewRtcpContext builds an RtcpContext over base.
func NewRtcpContext(base *BaseContext, isSender bool, replayEnabled bool) *RtcpContext {
	return &RtcpContext{
		base:          base,
		ssrc:          base.SSRC,
		isSender:      isSender,
		replayEnabled: replayEnabled,
	}
}

// cmIV builds the counter-mode IV for an SRTCP packet: identical to
// RtpContext.cmIV except the 31-bit SRTCP index takes the packet
// index's place, per section 4.4(c).
func (c *RtcpContext) cmIV(index uint32) []byte {
	salt := c.base.sessionKeys.SaltKey
	var iv [16]byte
	copy(iv[0:4], salt[0:4])

	var ssrcBuf [4]byte
	binary.BigEndian.PutUint32(ssrcBuf[:], c.ssrc)
	for i := 0; i < 4; i++ {
		iv[4+i] = salt[4+i] ^ ssrcBuf[i]
	}

	var idxBuf [8]byte
	binary.BigEndian.PutUint64(idxBuf[:], uint64(index))
	for i := 0; i < 6; i++ {
		iv[8+i] = salt[8+i] ^ idxBuf[2+i]
	}
	return iv[:]
}

// Transform is the sender path: encrypts the RTCP compound starting at
// byte 8, appends the SRTCP index (with the E bit set whenever
// encryption is active) and the auth tag.
func (c *RtcpContext) Transform(packet []byte) ([]byte, error) {
	if len(packet) < rtcpFixedHeaderLen {
		return nil, ErrPacketTooShort
	}

	if c.index >= 1<<31 {
		return nil, newError(ErrKindIndexOverflow, "srtcp index wrapped, re-key required")
	}

	header := packet[:rtcpFixedHeaderLen]
	body := packet[rtcpFixedHeaderLen:]

	if err := c.base.ensureKeys(uint64(c.index)); err != nil {
		return nil, err
	}

	encrypted := c.base.Policy.EncryptionKind != EncryptionNone
	if encrypted {
		if err := c.processPayload(body, c.index); err != nil {
			return nil, err
		}
	}

	indexWord := c.index
	if encrypted {
		indexWord |= srtcpEBit
	}

	out := make([]byte, 0, len(packet)+srtcpIndexLen+c.base.Policy.RtcpAuthTagLen)
	out = append(out, header...)
	out = append(out, body...)
	out = putUint32BigEndian(out, indexWord)

	if c.base.Policy.AuthKind != AuthNone {
		tag := c.base.mac.Tag(out, c.base.Policy.RtcpAuthTagLen)
		out = append(out, tag...)
	}

	c.replayWindow.Update(uint64(c.index))
	c.index++

	return out, nil
}

// ReverseTransform is the receiver path: checks the index against the
// replay window, verifies the auth tag over the packet up to and
// including the SRTCP index, then decrypts if the E bit is set.
func (c *RtcpContext) ReverseTransform(packet []byte) ([]byte, error) {
	tagLen := c.base.Policy.RtcpAuthTagLen
	if c.base.Policy.AuthKind == AuthNone {
		tagLen = 0
	}
	minLen := rtcpFixedHeaderLen + srtcpIndexLen + tagLen
	if len(packet) < minLen {
		return nil, ErrPacketTooShort
	}

	authed := packet[:len(packet)-tagLen]
	tag := packet[len(packet)-tagLen:]

	indexWord := binary.BigEndian.Uint32(packet[len(packet)-tagLen-srtcpIndexLen : len(packet)-tagLen])
	encrypted := indexWord&srtcpEBit != 0
	index := indexWord &^ srtcpEBit

	if c.replayEnabled {
		if err := c.replayWindow.Check(uint64(index)); err != nil {
			return nil, err
		}
	}

	if err := c.base.ensureKeys(uint64(index)); err != nil {
		return nil, err
	}

	if c.base.Policy.AuthKind != AuthNone {
		if !c.base.mac.Verify(authed, tag) {
			return nil, ErrAuthFailed
		}
	}

	header := packet[:rtcpFixedHeaderLen]
	body := packet[rtcpFixedHeaderLen : len(packet)-tagLen-srtcpIndexLen]

	if encrypted {
		bodyCopy := make([]byte, len(body))
		copy(bodyCopy, body)
		if err := c.processPayload(bodyCopy, index); err != nil {
			return nil, err
		}
		body = bodyCopy
	}

	c.replayWindow.Update(uint64(index))
	if index >= c.index {
		c.index = index + 1
	}

	out := make([]byte, 0, len(header)+len(body))
	out = append(out, header...)
	out = append(out, body...)
	return out, nil
}

// processPayload encrypts or decrypts an SRTCP body in place.
func (c *RtcpContext) processPayload(body []byte, index uint32) error {
	switch c.base.Policy.EncryptionKind {
	case EncryptionNone:
		return nil
	case EncryptionAesCm, EncryptionTwofishCm, EncryptionAesF8, EncryptionTwofishF8:
		iv := c.cmIV(index)
		c.base.cipher.Encrypt(iv, body)
		return nil
	default:
		return ErrUnsupportedKind
	}
}
