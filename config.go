package main

import (
	"context"
	"strconv"

	plogger "github.com/heytribe/go-plogger"
	"github.com/heytribe/live-srtpcore/my"
)

// Config holds the environment-driven knobs that sit above the srtp
// package: the default protection profile to assume before one has
// been negotiated, whether replay protection is enabled, and the
// default key derivation rate handed to freshly-created contexts.
type Config struct {
	PLogger string

	ReplayProtectionEnabled  bool
	DefaultProtectionProfile uint16
	DefaultKeyDerivationRate uint64
	DeadlockDetectionEnabled bool
}

func NewConfig() *Config {
	return new(Config)
}

func (c *Config) Init(ctx context.Context) (err error) {
	ctx = plogger.NewContextAddPrefix(ctx, "Config")
	log, _ := plogger.FromContext(ctx)

	// logger config
	c.PLogger = my.Getenv("SRTPCORE_DEBUG", "*:warn,tag*:warn")

	c.ReplayProtectionEnabled = my.Getenv("SRTP_REPLAY_PROTECTION", "1") != "0"
	c.DeadlockDetectionEnabled = my.Getenv("SRTP_DEADLOCK_DETECTION", "0") != "0"

	profile, err := strconv.ParseUint(my.Getenv("SRTP_DEFAULT_PROTECTION_PROFILE", "1"), 10, 16)
	if log.OnError(err, "invalid env SRTP_DEFAULT_PROTECTION_PROFILE") {
		return
	}
	c.DefaultProtectionProfile = uint16(profile)

	kdr, err := strconv.ParseUint(my.Getenv("SRTP_DEFAULT_KDR", "0"), 10, 64)
	if log.OnError(err, "invalid env SRTP_DEFAULT_KDR") {
		return
	}
	c.DefaultKeyDerivationRate = kdr

	return
}
