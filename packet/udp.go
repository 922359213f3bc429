package packet

import (
	"net"
	"time"
)

// UDP is the concrete IPacketUDP used across the pipeline: a byte
// buffer plus the remote address it was read from (inbound) or is
// headed to (outbound).
type UDP struct {
	data      []byte
	raddr     *net.UDPAddr
	createdAt time.Time
}

func NewUDP() *UDP {
	return &UDP{createdAt: time.Now()}
}

func NewUDPFromData(data []byte, raddr *net.UDPAddr) *UDP {
	return &UDP{
		data:      data,
		raddr:     raddr,
		createdAt: time.Now(),
	}
}

func (p *UDP) GetData() []byte {
	return p.data
}

func (p *UDP) SetData(data []byte) {
	p.data = data
}

func (p *UDP) GetSize() int {
	return len(p.data)
}

// Slice truncates the underlying buffer to data[from:to] in place,
// without copying. The srtp package's unprotect steps do not call it:
// they return the stripped packet in a newly allocated buffer.
func (p *UDP) Slice(from, to int) {
	p.data = p.data[from:to]
}

func (p *UDP) GetRAddr() *net.UDPAddr {
	return p.raddr
}

func (p *UDP) SetRAddr(raddr *net.UDPAddr) {
	p.raddr = raddr
}

func (p *UDP) GetCreatedAt() time.Time {
	return p.createdAt
}

func (p *UDP) SetCreatedAt(t time.Time) {
	p.createdAt = t
}
