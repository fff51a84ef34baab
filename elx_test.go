package elx

import (
	"reflect"
	"runtime"
	"strconv"
	"sync"
	"testing"
	"time"

	"dirpx.dev/elx/apis"
	"dirpx.dev/elx/config"
)

// Reset to a clean snapshot using our test builder.
// This fully replaces builder and config and rebuilds registry/resolver.
// Pins are reset (preg=false, pres=false) because we pass nil reg/res.
func resetWithBuilder(tb testing.TB, b apis.Builder, cfg apis.Config) {
	tb.Helper()
	SetAll(&cfg, nil, nil, b)
}

// ---------------------- Test doubles (mocks) ----------------------

type mockRegistry struct {
	id      string
	mu      sync.Mutex
	entries []apis.Entry
}

func newMockRegistry(id string) *mockRegistry {
	return &mockRegistry{id: id}
}

func (m *mockRegistry) Register(when apis.TypePredicate, f apis.Finder) error {
	m.mu.Lock()
	m.entries = append(m.entries, apis.Entry{When: when, Finder: f})
	m.mu.Unlock()
	return nil
}

func (m *mockRegistry) Lookup(t reflect.Type) (apis.Finder, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.When(t) {
			return e.Finder, true
		}
	}
	return nil, false
}

func (m *mockRegistry) Entries() []apis.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]apis.Entry(nil), m.entries...)
}

func (m *mockRegistry) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *mockRegistry) Reset() {
	m.mu.Lock()
	m.entries = nil
	m.mu.Unlock()
}

type mockResolver struct {
	id    string
	findC int
	mu    sync.Mutex
	cfg   apis.Config
}

func (r *mockResolver) Find(name string, target any) (apis.Element, bool, error) {
	r.mu.Lock()
	r.findC++
	r.mu.Unlock()
	return nil, false, nil
}

func (r *mockResolver) FindAll(target any) ([]apis.Element, error) {
	_, _, err := r.Find("", target)
	return nil, err
}

type mockBuilder struct {
	mu             sync.Mutex
	lastCfg        apis.Config
	lastPrevRegID  string
	regCounter     int
	resCounter     int
	returnFixedReg apis.Registry // optional override
	returnFixedRes apis.Resolver // optional override
}

func (b *mockBuilder) BuildRegistry(cfg apis.Config, prev apis.Registry) apis.Registry {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCfg = cfg
	if prev != nil {
		if mr, ok := prev.(*mockRegistry); ok {
			b.lastPrevRegID = mr.id
		}
	}
	if b.returnFixedReg != nil {
		return b.returnFixedReg
	}
	b.regCounter++
	return newMockRegistry("reg#" + strconv.Itoa(b.regCounter))
}

func (b *mockBuilder) BuildResolver(cfg apis.Config, reg apis.Registry) apis.Resolver {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCfg = cfg
	if b.returnFixedRes != nil {
		return b.returnFixedRes
	}
	b.resCounter++
	return &mockResolver{id: "res#" + strconv.Itoa(b.resCounter), cfg: cfg}
}

func (b *mockBuilder) counters() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.regCounter, b.resCounter
}

// ---------------------- Tests ----------------------

func TestSetConfig_Rebuilds_Unpinned(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, config.DefaultConfig())

	// snapshot 1
	s1Reg := Registry()
	s1Res := Resolver()

	// change cfg -> both should rebuild (not pinned)
	SetConfig(config.NewConfig(config.WithSeparator("/"), config.WithMaxUnwrap(4)))

	s2Reg := Registry()
	s2Res := Resolver()

	if s1Reg == s2Reg {
		t.Fatalf("registry was not rebuilt on SetConfig (unpinned)")
	}
	if s1Res == s2Res {
		t.Fatalf("resolver was not rebuilt on SetConfig (unpinned)")
	}

	b.mu.Lock()
	gotCfg, prevID := b.lastCfg, b.lastPrevRegID
	b.mu.Unlock()
	if gotCfg.MaxUnwrap != 4 || gotCfg.Separator != "/" {
		t.Fatalf("builder received wrong cfg: %+v", gotCfg)
	}
	if prevID != s1Reg.(*mockRegistry).id {
		t.Fatalf("builder received prev registry %q, want %q", prevID, s1Reg.(*mockRegistry).id)
	}
}

func TestSetConfig_SanitizesZeroFields(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, config.DefaultConfig())

	SetConfig(apis.Config{})

	got := Config()
	if got.Separator != config.DefaultSeparator || got.TagKey != config.DefaultTagKey || got.MaxUnwrap != config.DefaultMaxUnwrap {
		t.Fatalf("zero config was not sanitized: %+v", got)
	}
}

func TestSetRegistry_PinsRegistry_and_RebuildsResolverIfUnpinned(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, config.DefaultConfig())

	customReg := newMockRegistry("custom")
	SetRegistry(customReg)
	if !IsRegistryPinned() {
		t.Fatalf("SetRegistry should pin the registry")
	}

	beforeRes := Resolver()
	SetConfig(config.NewConfig(config.WithTagKey("check")))

	afterReg := Registry()
	afterRes := Resolver()

	if afterReg != customReg {
		t.Fatalf("pinned registry was rebuilt unexpectedly")
	}
	if afterRes == beforeRes {
		t.Fatalf("resolver was not rebuilt when cfg changed and res not pinned")
	}
}

func TestSetResolver_PinsResolver(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, config.DefaultConfig())

	// Pin resolver
	customRes := &mockResolver{id: "custom"}
	SetResolver(customRes)
	if !IsResolverPinned() {
		t.Fatalf("SetResolver should pin the resolver")
	}

	// Grab current registry pointer (should be from builder b)
	regBefore := Registry()

	// Change cfg -> expect: registry rebuilt (not pinned), resolver unchanged (pinned)
	SetConfig(config.NewConfig(config.WithMaxUnwrap(2)))

	regAfter := Registry()
	resAfter := Resolver()

	if resAfter != customRes {
		t.Fatalf("pinned resolver was rebuilt unexpectedly")
	}
	if regAfter == regBefore {
		t.Fatalf("registry was not rebuilt on SetConfig when resolver is pinned")
	}
}

func TestSetBuilder_Rebuilds_Only_Unpinned(t *testing.T) {
	// Start with builder A
	a := &mockBuilder{}
	resetWithBuilder(t, a, config.DefaultConfig())

	// Pin resolver, leave registry unpinned
	SetResolver(&mockResolver{id: "pinned"})
	regBefore := Registry()
	resBefore := Resolver()

	// Swap to builder B: the unpinned registry is rebuilt right away.
	b := &mockBuilder{}
	SetBuilder(b)
	if Builder() != b {
		t.Fatalf("builder was not swapped")
	}

	regAfter := Registry()
	resAfter := Resolver()

	if regAfter == regBefore {
		t.Fatalf("registry did not rebuild after SetBuilder (unpinned)")
	}
	if resAfter != resBefore {
		t.Fatalf("pinned resolver was rebuilt after SetBuilder")
	}
	if regs, _ := b.counters(); regs != 1 {
		t.Fatalf("new builder built %d registries, want 1", regs)
	}
}

func TestPin_Without_Replacing(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, config.DefaultConfig())

	PinRegistry()
	PinResolver()
	regs, ress := b.counters()

	SetConfig(config.NewConfig(config.WithUnexported(false)))
	if r2, s2 := b.counters(); r2 != regs || s2 != ress {
		t.Fatalf("SetConfig should not rebuild when both layers are pinned")
	}
	if Config().Unexported {
		t.Fatalf("config was not updated while layers are pinned")
	}
}

func TestUnpin_Allows_Rebuild_After(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, config.DefaultConfig())

	SetRegistry(Registry())
	SetResolver(Resolver())

	reg1 := Registry()
	res1 := Resolver()
	SetConfig(config.NewConfig(config.WithMaxUnwrap(4)))
	if Registry() != reg1 || Resolver() != res1 {
		t.Fatalf("pinned layers should not rebuild on SetConfig")
	}

	UnpinRegistry()
	UnpinResolver()
	if IsRegistryPinned() || IsResolverPinned() {
		t.Fatalf("layers still pinned after Unpin")
	}
	SetConfig(config.NewConfig(config.WithMaxUnwrap(6)))
	if Registry() == reg1 {
		t.Fatalf("registry should rebuild after UnpinRegistry+SetConfig")
	}
	if Resolver() == res1 {
		t.Fatalf("resolver should rebuild after UnpinResolver+SetConfig")
	}
}

func TestSetBuilder_NilResolver_Panics(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, config.DefaultConfig())

	defer func() {
		if r := recover(); r != ErrNilResolver {
			t.Fatalf("recover() = %v, want ErrNilResolver", r)
		}
	}()
	SetBuilder(&nilResolverBuilder{})
}

// nilResolverBuilder builds a registry but no resolver.
type nilResolverBuilder struct{ mockBuilder }

func (*nilResolverBuilder) BuildResolver(apis.Config, apis.Registry) apis.Resolver { return nil }

func TestElement_Concurrent_With_SetConfig(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, config.DefaultConfig())

	type token struct{}
	done := make(chan struct{})
	var wg sync.WaitGroup

	readers := runtime.GOMAXPROCS(0) * 4
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				_, _, _ = Element("x").From(token{})
				_, _ = Elements().From(reflect.TypeOf(token{}))
			}
		}()
	}

	go func() {
		for i := 0; i < 20; i++ {
			SetConfig(config.NewConfig(
				config.WithUnexported(i%2 == 0),
				config.WithMaxUnwrap(4+(i%5)),
			))
			time.Sleep(time.Millisecond)
		}
		close(done)
	}()

	wg.Wait()
	<-done
}
