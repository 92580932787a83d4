package httpf

import (
	"time"

	"gopkg.in/h2non/gentleman.v2"
)

//go:generate mockgen -source=./interface.go -destination=./mock/httpf.go -package=mock

// F produces gentleman clients preconfigured for talking to a bits-service endpoint.
type F interface {
	// New returns a client derived from the factory's cached parent. Plugins registered on the returned
	// client do not leak into other clients.
	New() *gentleman.Client

	// ForRequestInfo returns a factory whose clients are tagged with the given request info.
	ForRequestInfo(ri RequestInfo) F

	// ForTier returns a factory whose clients apply the timeout of the given tier.
	ForTier(t Tier) F
}

// Tier is a timeout budget. Metadata calls are expected to be fast; calls that move payload get much longer.
type Tier string

const (
	TierFast Tier = "fast"
	TierSlow Tier = "slow"
)

// Timeouts maps each tier to its request timeout. A zero duration means no timeout.
type Timeouts map[Tier]time.Duration

type RequestInfo struct {
	Component string
	Endpoint  string
	Tier      Tier
}
