package mock

import (
	"sync"
	"testing"

	"github.com/rmorlok/bitsclient/internal/httpf"
	genmock "gopkg.in/h2non/gentleman-mock.v2"
	"gopkg.in/h2non/gentleman.v2"
	"gopkg.in/h2non/gock.v1"
)

// Recorder collects the request info of every client a mocking factory hands out.
type Recorder struct {
	mu    sync.Mutex
	infos []httpf.RequestInfo
}

func (r *Recorder) add(ri httpf.RequestInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, ri)
}

func (r *Recorder) Clients() []httpf.RequestInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]httpf.RequestInfo{}, r.infos...)
}

// Tiers lists the tier of each client in the order they were created.
func (r *Recorder) Tiers() []httpf.Tier {
	infos := r.Clients()
	tiers := make([]httpf.Tier, 0, len(infos))
	for _, ri := range infos {
		tiers = append(tiers, ri.Tier)
	}
	return tiers
}

type mockingFactory struct {
	ri  httpf.RequestInfo
	rec *Recorder
}

func (f *mockingFactory) ForRequestInfo(ri httpf.RequestInfo) httpf.F {
	return &mockingFactory{ri: ri, rec: f.rec}
}

func (f *mockingFactory) ForTier(t httpf.Tier) httpf.F {
	ri := f.ri
	ri.Tier = t
	return f.ForRequestInfo(ri)
}

func (f *mockingFactory) New() *gentleman.Client {
	f.rec.add(f.ri)

	cli := gentleman.New()
	cli.Use(httpf.DisableRedirects())
	cli.Use(genmock.Plugin)
	return cli
}

// NewMockingFactory returns a factory whose clients are intercepted by gock, and a recorder of the clients it
// built. gock is switched off when the test ends.
func NewMockingFactory(tb testing.TB) (httpf.F, *Recorder) {
	tb.Cleanup(gock.Off)

	rec := &Recorder{}
	return &mockingFactory{rec: rec}, rec
}
