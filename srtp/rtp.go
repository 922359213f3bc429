package srtp

import "encoding/binary"

// RTP header field access, RFC 3550 section 5.1. These are free
// functions over raw bytes rather than a wrapper type: the contexts
// only ever need a handful of fields out of an otherwise opaque
// packet, and keeping them as pure functions avoids pulling in a
// packet-object hierarchy this package has no other use for.

const rtpFixedHeaderLen = 12

// rtpSeq reads the 16-bit sequence number at header bytes 2-3.
func rtpSeq(header []byte) uint16 {
	return binary.BigEndian.Uint16(header[2:4])
}

// rtpSSRC reads the 32-bit SSRC at header bytes 8-11.
func rtpSSRC(header []byte) uint32 {
	return binary.BigEndian.Uint32(header[8:12])
}

// rtpHeaderLen computes the full header length, including the CSRC
// list and, if present, the extension header, per RFC 3550 section
// 5.1 and 5.3.1.
func rtpHeaderLen(packet []byte) (int, error) {
	if len(packet) < rtpFixedHeaderLen {
		return 0, ErrPacketTooShort
	}
	csrcCount := int(packet[0] & 0x0f)
	headerLen := rtpFixedHeaderLen + 4*csrcCount

	hasExtension := packet[0]&0x10 != 0
	if hasExtension {
		if len(packet) < headerLen+4 {
			return 0, ErrPacketTooShort
		}
		extLenWords := int(binary.BigEndian.Uint16(packet[headerLen+2 : headerLen+4]))
		headerLen += 4 + 4*extLenWords
	}

	if len(packet) < headerLen {
		return 0, ErrPacketTooShort
	}
	return headerLen, nil
}

// putUint32BigEndian appends the big-endian bytes of v to dst, without
// an intermediate allocation — used to fold ROC into the authenticated
// portion of a packet.
func putUint32BigEndian(dst []byte, v uint32) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return append(dst, buf[:]...)
}
