package srtp_test

import (
	"bytes"
	"net"
	"testing"

	"github.com/heytribe/live-srtpcore/packet"
	"github.com/heytribe/live-srtpcore/srtp"
)

func TestManagerPacketIORoundTrip(t *testing.T) {
	policy := srtp.DefaultPolicyAes128CmHmacSha1_80()

	masterKey := make([]byte, policy.EncKeyLen)
	masterSalt := make([]byte, policy.SaltKeyLen)
	for i := range masterKey {
		masterKey[i] = byte(i + 3)
	}
	for i := range masterSalt {
		masterSalt[i] = byte(70 + i)
	}

	senderManager, err := srtp.NewManager(policy, true, 0)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	receiverManager, err := srtp.NewManager(policy, true, 0)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if _, _, err := senderManager.DeriveContext(testSSRC, copyMasterKey(masterKey, masterSalt), 0, true); err != nil {
		t.Fatalf("sender DeriveContext: %v", err)
	}
	if _, _, err := receiverManager.DeriveContext(testSSRC, copyMasterKey(masterKey, masterSalt), 0, false); err != nil {
		t.Fatalf("receiver DeriveContext: %v", err)
	}

	raddr := &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 5000}
	original := buildRTPPacket(0, []byte("packet.IPacketUDP wrapped payload"))
	udpPacket := packet.NewUDPFromData(append([]byte{}, original...), raddr)

	protected, err := senderManager.TransformRtpPacket(udpPacket)
	if err != nil {
		t.Fatalf("TransformRtpPacket: %v", err)
	}

	recovered, err := receiverManager.ReverseTransformRtpPacket(protected)
	if err != nil {
		t.Fatalf("ReverseTransformRtpPacket: %v", err)
	}

	if !bytes.Equal(recovered.GetData(), original) {
		t.Fatalf("round trip mismatch:\n got  %x\n want %x", recovered.GetData(), original)
	}
	if recovered.GetRAddr().String() != raddr.String() {
		t.Fatalf("remote address not preserved: got %s, want %s", recovered.GetRAddr(), raddr)
	}
}
