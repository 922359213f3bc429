package srtp_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/heytribe/live-srtpcore/srtp"
)

func buildRTCPPacket(ssrc uint32, body []byte) []byte {
	packet := make([]byte, 8+len(body))
	packet[0] = 0x80
	packet[1] = 200 // SR
	binary.BigEndian.PutUint16(packet[2:4], uint16(len(packet)/4-1))
	binary.BigEndian.PutUint32(packet[4:8], ssrc)
	copy(packet[8:], body)
	return packet
}

func newRtcpSenderReceiverPair(t *testing.T, policy srtp.Policy, replayEnabled bool) (*srtp.RtcpContext, *srtp.RtcpContext) {
	masterKey := make([]byte, policy.EncKeyLen)
	masterSalt := make([]byte, policy.SaltKeyLen)
	for i := range masterKey {
		masterKey[i] = byte(i + 5)
	}
	for i := range masterSalt {
		masterSalt[i] = byte(100 + i)
	}

	senderBase, err := srtp.NewBaseContext(testSSRC, policy, copyMasterKey(masterKey, masterSalt), 0, true)
	if err != nil {
		t.Fatalf("sender NewBaseContext: %v", err)
	}
	receiverBase, err := srtp.NewBaseContext(testSSRC, policy, copyMasterKey(masterKey, masterSalt), 0, true)
	if err != nil {
		t.Fatalf("receiver NewBaseContext: %v", err)
	}

	sender := srtp.NewRtcpContext(senderBase, true, replayEnabled)
	receiver := srtp.NewRtcpContext(receiverBase, false, replayEnabled)
	return sender, receiver
}

func TestRtcpRoundTrip(t *testing.T) {
	policy := srtp.DefaultPolicyAes128CmHmacSha1_80()
	sender, receiver := newRtcpSenderReceiverPair(t, policy, true)

	packet := buildRTCPPacket(testSSRC, []byte("rtcp report body"))
	protected, err := sender.Transform(append([]byte{}, packet...))
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}

	recovered, err := receiver.ReverseTransform(protected)
	if err != nil {
		t.Fatalf("ReverseTransform: %v", err)
	}
	if !bytes.Equal(recovered, packet) {
		t.Fatalf("round trip mismatch:\n got  %x\n want %x", recovered, packet)
	}
}

func TestRtcpIndexReplayRejected(t *testing.T) {
	policy := srtp.DefaultPolicyAes128CmHmacSha1_80()
	sender, receiver := newRtcpSenderReceiverPair(t, policy, true)

	packet := buildRTCPPacket(testSSRC, []byte("body"))
	protected, err := sender.Transform(append([]byte{}, packet...))
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}

	if _, err := receiver.ReverseTransform(append([]byte{}, protected...)); err != nil {
		t.Fatalf("first delivery should succeed, got %v", err)
	}
	if _, err := receiver.ReverseTransform(append([]byte{}, protected...)); !errors.Is(err, srtp.ErrReplayed) {
		t.Fatalf("second delivery should be Replayed, got %v", err)
	}
}

func TestRtcpMonotonicIndexAdvances(t *testing.T) {
	policy := srtp.DefaultPolicyAes128CmHmacSha1_80()
	sender, receiver := newRtcpSenderReceiverPair(t, policy, true)

	for i := 0; i < 5; i++ {
		packet := buildRTCPPacket(testSSRC, []byte("body"))
		protected, err := sender.Transform(append([]byte{}, packet...))
		if err != nil {
			t.Fatalf("Transform(#%d): %v", i, err)
		}
		if _, err := receiver.ReverseTransform(protected); err != nil {
			t.Fatalf("ReverseTransform(#%d): %v", i, err)
		}
	}
}
