package srtp

import (
	"encoding/binary"

	"github.com/heytribe/live-srtpcore/my"
)

// ssrcRtpContexts and ssrcRtcpContexts are protected SSRC→Context
// maps, the same shape as tools.protectedmap.go's ProtectedMap but
// typed to their value instead of interface{}, since every map here
// holds exactly one concrete context type.
type ssrcRtpContexts struct {
	my.RWMutex
	d map[uint32]*RtpContext
}

func newSsrcRtpContexts() *ssrcRtpContexts {
	return &ssrcRtpContexts{d: make(map[uint32]*RtpContext)}
}

func (m *ssrcRtpContexts) get(ssrc uint32) (*RtpContext, bool) {
	m.RLock()
	defer m.RUnlock()
	c, ok := m.d[ssrc]
	return c, ok
}

func (m *ssrcRtpContexts) set(ssrc uint32, c *RtpContext) {
	m.Lock()
	defer m.Unlock()
	m.d[ssrc] = c
}

func (m *ssrcRtpContexts) del(ssrc uint32) {
	m.Lock()
	defer m.Unlock()
	delete(m.d, ssrc)
}

type ssrcRtcpContexts struct {
	my.RWMutex
	d map[uint32]*RtcpContext
}

func newSsrcRtcpContexts() *ssrcRtcpContexts {
	return &ssrcRtcpContexts{d: make(map[uint32]*RtcpContext)}
}

func (m *ssrcRtcpContexts) get(ssrc uint32) (*RtcpContext, bool) {
	m.RLock()
	defer m.RUnlock()
	c, ok := m.d[ssrc]
	return c, ok
}

func (m *ssrcRtcpContexts) set(ssrc uint32, c *RtcpContext) {
	m.Lock()
	defer m.Unlock()
	m.d[ssrc] = c
}

func (m *ssrcRtcpContexts) del(ssrc uint32) {
	m.Lock()
	defer m.Unlock()
	delete(m.d, ssrc)
}

// Manager owns the four SSRC-keyed context maps for a single DTLS-SRTP
// session (outbound RTP, inbound RTP, outbound RTCP, inbound RTCP) and
// routes packets to the right one. It never negotiates key material or
// protection profiles itself — those arrive fully formed from the
// caller, normally fed by dtls.ExtractSrtpKeys.
type Manager struct {
	policy        Policy
	replayEnabled bool
	kdr           uint64

	outboundRTP  *ssrcRtpContexts
	inboundRTP   *ssrcRtpContexts
	outboundRTCP *ssrcRtcpContexts
	inboundRTCP  *ssrcRtcpContexts
}

// NewManager builds a Manager for one negotiated cipher suite. kdr is
// the default key derivation rate handed to every context created via
// DeriveContext; replayEnabled toggles replay-window enforcement
// session-wide, per the configurable-toggle design note.
func NewManager(policy Policy, replayEnabled bool, kdr uint64) (*Manager, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Manager{
		policy:        policy,
		replayEnabled: replayEnabled,
		kdr:           kdr,
		outboundRTP:   newSsrcRtpContexts(),
		inboundRTP:    newSsrcRtpContexts(),
		outboundRTCP:  newSsrcRtcpContexts(),
		inboundRTCP:   newSsrcRtcpContexts(),
	}, nil
}

// DeriveContext clones the manager's cipher-suite state into a fresh
// RtpContext/RtcpContext pair for ssrc, keyed with masterKey, and
// registers both in the outbound or inbound maps depending on
// isSender. masterKey is consumed: ownership passes to the new
// contexts' BaseContexts, which wipe it once session keys are derived.
func (m *Manager) DeriveContext(ssrc uint32, masterKey MasterKeyMaterial, initialROC uint32, isSender bool) (*RtpContext, *RtcpContext, error) {
	rtpMasterKey := MasterKeyMaterial{
		Key:  append([]byte{}, masterKey.Key...),
		Salt: append([]byte{}, masterKey.Salt...),
	}
	rtcpMasterKey := masterKey

	rtpBase, err := NewBaseContext(ssrc, m.policy, rtpMasterKey, m.kdr, false)
	if err != nil {
		return nil, nil, err
	}
	rtcpBase, err := NewBaseContext(ssrc, m.policy, rtcpMasterKey, m.kdr, true)
	if err != nil {
		return nil, nil, err
	}

	rtpCtx := NewRtpContext(rtpBase, isSender, m.replayEnabled)
	rtpCtx.roc = initialROC

	rtcpCtx := NewRtcpContext(rtcpBase, isSender, m.replayEnabled)

	if isSender {
		m.outboundRTP.set(ssrc, rtpCtx)
		m.outboundRTCP.set(ssrc, rtcpCtx)
	} else {
		m.inboundRTP.set(ssrc, rtpCtx)
		m.inboundRTCP.set(ssrc, rtcpCtx)
	}

	return rtpCtx, rtcpCtx, nil
}

// RemoveStream drops every context registered for ssrc, wiping their
// key material. Call when a stream is torn down.
func (m *Manager) RemoveStream(ssrc uint32) {
	if c, ok := m.outboundRTP.get(ssrc); ok {
		c.base.Close()
	}
	if c, ok := m.inboundRTP.get(ssrc); ok {
		c.base.Close()
	}
	if c, ok := m.outboundRTCP.get(ssrc); ok {
		c.base.Close()
	}
	if c, ok := m.inboundRTCP.get(ssrc); ok {
		c.base.Close()
	}
	m.outboundRTP.del(ssrc)
	m.inboundRTP.del(ssrc)
	m.outboundRTCP.del(ssrc)
	m.inboundRTCP.del(ssrc)
}

// TransformRtp encrypts an outgoing RTP packet using the registered
// outbound context for its SSRC.
func (m *Manager) TransformRtp(packet []byte) ([]byte, error) {
	headerLen, err := rtpHeaderLen(packet)
	if err != nil {
		return nil, err
	}
	ssrc := rtpSSRC(packet[:headerLen])
	ctx, ok := m.outboundRTP.get(ssrc)
	if !ok {
		return nil, ErrUnknownSSRC
	}
	return ctx.Transform(packet)
}

// ReverseTransformRtp decrypts an incoming SRTP packet using the
// registered inbound context for its SSRC.
func (m *Manager) ReverseTransformRtp(packet []byte) ([]byte, error) {
	headerLen, err := rtpHeaderLen(packet)
	if err != nil {
		return nil, err
	}
	ssrc := rtpSSRC(packet[:headerLen])
	ctx, ok := m.inboundRTP.get(ssrc)
	if !ok {
		return nil, ErrUnknownSSRC
	}
	return ctx.ReverseTransform(packet)
}

// rtcpSSRC reads the sender SSRC at bytes 4-7 of an RTCP compound's
// first packet, present in every RTCP packet type this package needs
// to route by.
func rtcpSSRC(packet []byte) (uint32, error) {
	if len(packet) < rtcpFixedHeaderLen {
		return 0, ErrPacketTooShort
	}
	return binary.BigEndian.Uint32(packet[4:8]), nil
}

// TransformRtcp encrypts an outgoing RTCP compound using the
// registered outbound context for its SSRC.
func (m *Manager) TransformRtcp(packet []byte) ([]byte, error) {
	ssrc, err := rtcpSSRC(packet)
	if err != nil {
		return nil, err
	}
	ctx, ok := m.outboundRTCP.get(ssrc)
	if !ok {
		return nil, ErrUnknownSSRC
	}
	return ctx.Transform(packet)
}

// ReverseTransformRtcp decrypts an incoming SRTCP compound using the
// registered inbound context for its SSRC.
func (m *Manager) ReverseTransformRtcp(packet []byte) ([]byte, error) {
	ssrc, err := rtcpSSRC(packet)
	if err != nil {
		return nil, err
	}
	ctx, ok := m.inboundRTCP.get(ssrc)
	if !ok {
		return nil, ErrUnknownSSRC
	}
	return ctx.ReverseTransform(packet)
}
