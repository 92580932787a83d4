package httpf

import (
	"crypto/tls"
	"crypto/x509"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/rmorlok/bitsclient/internal/bslog"
	"gopkg.in/h2non/gentleman.v2"
	"gopkg.in/h2non/gentleman.v2/plugin"
	"gopkg.in/h2non/gentleman.v2/plugins/timeout"
	"gopkg.in/h2non/gentleman.v2/plugins/transport"
)

// Config is the transport configuration shared by all clients a factory creates.
type Config struct {
	// CACertPath is an optional PEM bundle trusted in addition to the system roots.
	CACertPath string

	Timeouts Timeouts

	// Plugins are applied to every client after the factory's own plugins. Tests use this to install the
	// gock interception plugin.
	Plugins []plugin.Plugin
}

type clientFactory struct {
	cfg         Config
	transport   http.RoundTripper
	middlewares []RoundTripperFactory
	logger      *slog.Logger
	requestInfo RequestInfo

	factoryParent     *gentleman.Client
	factoryParentOnce *sync.Once
}

func CreateFactory(cfg Config, logger *slog.Logger) (F, error) {
	base, err := newTransport(cfg.CACertPath)
	if err != nil {
		return nil, err
	}

	logger = bslog.OrNoop(logger)

	// Order matters here to determine the order of middlewares
	middlewares := []RoundTripperFactory{
		&loggingRoundTripperFactory{logger: logger},
	}

	return &clientFactory{
		cfg:         cfg,
		transport:   base,
		middlewares: middlewares,
		logger:      logger,
		requestInfo: RequestInfo{
			Tier: TierSlow,
		},
		factoryParentOnce: &sync.Once{},
	}, nil
}

func (f *clientFactory) ForRequestInfo(ri RequestInfo) F {
	return &clientFactory{
		cfg:               f.cfg,
		transport:         f.transport,
		middlewares:       f.middlewares,
		logger:            f.logger,
		requestInfo:       ri,
		factoryParentOnce: &sync.Once{},
	}
}

func (f *clientFactory) ForTier(t Tier) F {
	ri := f.requestInfo
	ri.Tier = t

	return f.ForRequestInfo(ri)
}

func (f *clientFactory) New() *gentleman.Client {
	// Callers establish the request info with the For... chaining before calling New, so the parent can be
	// built once per derived factory with its middlewares applied.
	f.factoryParentOnce.Do(func() {
		f.factoryParent = gentleman.New()

		parent := f.transport
		for _, m := range f.middlewares {
			result := m.NewRoundTripper(f.requestInfo, parent)
			if result != nil {
				parent = result
			}
		}

		f.factoryParent.Use(transport.Set(parent))
		f.factoryParent.Use(DisableRedirects())

		if d := f.cfg.Timeouts[f.requestInfo.Tier]; d > 0 {
			f.factoryParent.Use(timeout.Request(d))
		}

		for _, p := range f.cfg.Plugins {
			f.factoryParent.Use(p)
		}
	})

	return gentleman.New().UseParent(f.factoryParent)
}

func newTransport(caCertPath string) (*http.Transport, error) {
	var t *http.Transport
	if dt, ok := http.DefaultTransport.(*http.Transport); ok {
		t = dt.Clone()
	} else {
		t = &http.Transport{Proxy: http.ProxyFromEnvironment}
	}

	if caCertPath == "" {
		return t, nil
	}

	pool, err := x509.SystemCertPool()
	if err != nil || pool == nil {
		pool = x509.NewCertPool()
	}

	pem, err := os.ReadFile(caCertPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read ca cert '%s'", caCertPath)
	}

	if !pool.AppendCertsFromPEM(pem) {
		return nil, errors.Errorf("no certificates found in ca cert '%s'", caCertPath)
	}

	t.TLSClientConfig = &tls.Config{
		RootCAs:    pool,
		MinVersion: tls.VersionTLS12,
	}

	return t, nil
}

var _ F = &clientFactory{}
