package srtp_test

import (
	"testing"

	"github.com/heytribe/live-srtpcore/srtp"
)

func TestHmacSha1VerifyAcceptsOwnTag(t *testing.T) {
	mac, err := srtp.NewMAC(srtp.AuthHmacSha1, []byte("a reasonably long authentication key"))
	if err != nil {
		t.Fatalf("NewMAC: %v", err)
	}

	data := []byte("header and payload and roc")
	tag := mac.Tag(data, 10)
	if len(tag) != 10 {
		t.Fatalf("tag length = %d, want 10", len(tag))
	}
	if !mac.Verify(data, tag) {
		t.Fatal("Verify rejected a tag it just produced")
	}
}

func TestHmacSha1VerifyRejectsTamperedData(t *testing.T) {
	mac, err := srtp.NewMAC(srtp.AuthHmacSha1, []byte("a reasonably long authentication key"))
	if err != nil {
		t.Fatalf("NewMAC: %v", err)
	}

	tag := mac.Tag([]byte("original data"), 10)
	if mac.Verify([]byte("tampered data"), tag) {
		t.Fatal("Verify accepted a tag for the wrong data")
	}
}

func TestNewMACRejectsSkein(t *testing.T) {
	if _, err := srtp.NewMAC(srtp.AuthSkein, []byte("key")); err != srtp.ErrUnsupportedKind {
		t.Fatalf("expected ErrUnsupportedKind for Skein, got %v", err)
	}
}
