package srtp

import "github.com/heytribe/live-srtpcore/packet"

// The operations above work on raw []byte, the external interface
// this package's governing specification actually calls for. These
// wrappers adapt that to packet.IPacketUDP, the socket-level packet
// object a caller reading off a live UDP connection already has in
// hand — mirroring how PipelineNodeSRTP wrapped the cgo-era transform
// calls around IPacketUDP, minus everything that wrapper also did
// with RTCP demuxing and pipeline routing.

// TransformRtpPacket encrypts p's payload in place against the
// registered outbound context for its SSRC, preserving p's remote
// address and arrival timestamp on the returned packet.
func (m *Manager) TransformRtpPacket(p packet.IPacketUDP) (packet.IPacketUDP, error) {
	out, err := m.TransformRtp(p.GetData())
	if err != nil {
		return nil, err
	}
	return clonePacketWithData(p, out), nil
}

// ReverseTransformRtpPacket decrypts p's payload in place against the
// registered inbound context for its SSRC.
func (m *Manager) ReverseTransformRtpPacket(p packet.IPacketUDP) (packet.IPacketUDP, error) {
	out, err := m.ReverseTransformRtp(p.GetData())
	if err != nil {
		return nil, err
	}
	return clonePacketWithData(p, out), nil
}

// TransformRtcpPacket is the RTCP counterpart of TransformRtpPacket.
func (m *Manager) TransformRtcpPacket(p packet.IPacketUDP) (packet.IPacketUDP, error) {
	out, err := m.TransformRtcp(p.GetData())
	if err != nil {
		return nil, err
	}
	return clonePacketWithData(p, out), nil
}

// ReverseTransformRtcpPacket is the RTCP counterpart of
// ReverseTransformRtpPacket.
func (m *Manager) ReverseTransformRtcpPacket(p packet.IPacketUDP) (packet.IPacketUDP, error) {
	out, err := m.ReverseTransformRtcp(p.GetData())
	if err != nil {
		return nil, err
	}
	return clonePacketWithData(p, out), nil
}

func clonePacketWithData(src packet.IPacketUDP, data []byte) packet.IPacketUDP {
	out := packet.NewUDPFromData(data, src.GetRAddr())
	out.SetCreatedAt(src.GetCreatedAt())
	return out
}
