package main

import (
	"context"
	"os"

	plogger "github.com/heytribe/go-plogger"
	"github.com/heytribe/live-srtpcore/my"
	"github.com/heytribe/live-srtpcore/srtp"
)

// main wires Config into a single srtp.Manager and exercises it
// against one freshly-generated stream, standing in for the DTLS-SRTP
// handshake and transport layers this tree deliberately doesn't own.
func main() {
	log := plogger.New()
	ctx := plogger.NewContext(context.Background(), log)

	config := NewConfig()
	err := config.Init(ctx)
	if log.OnError(err, "could not config, exiting...") {
		os.Exit(1)
	}

	plogger.FilterOutputs(config.PLogger)
	my.EnableAssert()
	if config.DeadlockDetectionEnabled {
		my.EnableDeadlockDetection()
	}

	policy, err := srtp.PolicyForProtectionProfile(srtp.ProtectionProfile(config.DefaultProtectionProfile))
	panicOnError(err, "unsupported default protection profile")

	manager, err := srtp.NewManager(policy, config.ReplayProtectionEnabled, config.DefaultKeyDerivationRate)
	panicOnError(err, "could not build srtp manager")

	masterKey, err := srtp.GenerateMasterKeyMaterial(policy)
	panicOnError(err, "could not generate master key material")

	const demoSSRC = uint32(0xcafebabe)
	_, _, err = manager.DeriveContext(demoSSRC, masterKey, 0, true)
	panicOnError(err, "could not derive srtp context")

	log.Infof("srtp manager ready for ssrc=%d under %s", demoSSRC, policy.EncryptionKind)
}
