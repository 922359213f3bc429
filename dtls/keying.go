package dtls

// Package dtls, in this tree, is reduced to the one seam srtpcore
// actually needs from a completed DTLS-SRTP handshake: turning the
// exported keying material (RFC 5764 section 4.2) into the master
// key/salt pairs that feed srtp.BaseContext. The handshake itself, its
// certificates, and its cipher-suite negotiation belong to the DTLS
// layer proper and live outside this package.

const labelExtractorDtlsSrtp = "EXTRACTOR-dtls_srtp"

// Exporter is satisfied by a completed DTLS connection capable of
// producing RFC 5705 keying material. crypto/tls's Conn implements an
// equivalent method once a handshake completes.
type Exporter interface {
	ExportKeyingMaterial(label string, context []byte, length int) ([]byte, error)
}

// SrtpKeys is the four-way split of exported keying material, before
// it is assigned to a local/remote direction.
type SrtpKeys struct {
	ClientWriteKey  []byte
	ServerWriteKey  []byte
	ClientWriteSalt []byte
	ServerWriteSalt []byte
}

// ExtractSrtpKeys exports (keyLen*2 + saltLen*2) bytes from exporter
// under the dtls_srtp label and splits them into the four keying
// components, per RFC 5764 section 4.2:
//
//	client_write_key ‖ server_write_key ‖ client_write_salt ‖ server_write_salt
func ExtractSrtpKeys(exporter Exporter, keyLen, saltLen int) (*SrtpKeys, error) {
	material, err := exporter.ExportKeyingMaterial(labelExtractorDtlsSrtp, nil, 2*(keyLen+saltLen))
	if err != nil {
		return nil, err
	}

	offset := 0
	clientKey := material[offset : offset+keyLen]
	offset += keyLen
	serverKey := material[offset : offset+keyLen]
	offset += keyLen
	clientSalt := material[offset : offset+saltLen]
	offset += saltLen
	serverSalt := material[offset : offset+saltLen]

	return &SrtpKeys{
		ClientWriteKey:  append([]byte{}, clientKey...),
		ServerWriteKey:  append([]byte{}, serverKey...),
		ClientWriteSalt: append([]byte{}, clientSalt...),
		ServerWriteSalt: append([]byte{}, serverSalt...),
	}, nil
}

// LocalRemote resolves SrtpKeys into the (local, remote) master key
// pairs a peer actually uses, depending on whether it ran the DTLS
// client or server role.
func (k *SrtpKeys) LocalRemote(isClient bool) (local, remote struct{ Key, Salt []byte }) {
	if isClient {
		local.Key, local.Salt = k.ClientWriteKey, k.ClientWriteSalt
		remote.Key, remote.Salt = k.ServerWriteKey, k.ServerWriteSalt
		return
	}
	local.Key, local.Salt = k.ServerWriteKey, k.ServerWriteSalt
	remote.Key, remote.Salt = k.ClientWriteKey, k.ClientWriteSalt
	return
}
