package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	types "github.com/yungbote/sotfinder-backend/internal/domain"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/generator"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/store"
	"github.com/yungbote/sotfinder-backend/internal/pkg/logger"
)

type fakePipeline struct {
	generates   atomic.Int32
	regenerates atomic.Int32
	enriches    atomic.Int32
	hash        string
	release     chan struct{}
	err         error
}

func (p *fakePipeline) result(slug, name string) *generator.Result {
	return &generator.Result{
		Slug:       slug,
		ConfigHash: p.hash,
		Curriculum: &types.Curriculum{Language: name},
	}
}

func (p *fakePipeline) block() {
	if p.release != nil {
		<-p.release
	}
}

func (p *fakePipeline) Generate(_ context.Context, slug string) (*generator.Result, error) {
	p.generates.Add(1)
	p.block()
	if p.err != nil {
		return nil, p.err
	}
	return p.result(slug, "generated"), nil
}

func (p *fakePipeline) Regenerate(_ context.Context, slug string) (*generator.Result, error) {
	p.regenerates.Add(1)
	if p.err != nil {
		return nil, p.err
	}
	return p.result(slug, "regenerated"), nil
}

func (p *fakePipeline) Enrich(_ context.Context, _ string, cur *types.Curriculum, _ generator.EnrichOptions) (*types.Curriculum, error) {
	p.enriches.Add(1)
	out := *cur
	out.Language = cur.Language + "+enriched"
	return &out, nil
}

type fixedHash struct {
	hash string
	ok   bool
	err  error
}

func (f fixedHash) ResolveHash(context.Context, string) (string, bool, error) {
	return f.hash, f.ok, f.err
}

func TestGetCoalescesConcurrentCallers(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := &fakePipeline{hash: "h1", release: make(chan struct{})}
	remote := store.NewMemoryRemote()
	m := NewManager(logger.Nop(), p, fixedHash{hash: "h1", ok: true}, remote, Options{})

	const callers = 8
	var wg sync.WaitGroup
	results := make([]*types.Curriculum, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cur, err := m.Get(context.Background(), "Java")
			if err != nil {
				t.Errorf("Get: %v", err)
				return
			}
			results[i] = cur
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(p.release)
	wg.Wait()

	if got := p.generates.Load(); got != 1 {
		t.Fatalf("expected 1 generation, got %d", got)
	}
	for i, cur := range results {
		if cur != results[0] {
			t.Fatalf("caller %d got a different curriculum", i)
		}
	}
	entry, _ := remote.GetCurriculum(context.Background(), "java")
	if entry == nil || entry.ConfigHash != "h1" {
		t.Fatalf("expected shared entry with hash h1, got %+v", entry)
	}
}

func TestGetServesSharedEntryWhenHashMatches(t *testing.T) {
	remote := store.NewMemoryRemote()
	_ = remote.UpsertCurriculum(context.Background(), store.CachedCurriculum{
		LanguageSlug: "java",
		ConfigHash:   "h1",
		Curriculum:   &types.Curriculum{Language: "cached"},
	})
	p := &fakePipeline{hash: "h1"}
	m := NewManager(logger.Nop(), p, fixedHash{hash: "h1", ok: true}, remote, Options{})

	cur, err := m.Get(context.Background(), "java")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if cur.Language != "cached" || p.generates.Load() != 0 {
		t.Fatalf("expected cached entry without generation, got %q (%d generations)", cur.Language, p.generates.Load())
	}
}

func TestGetStaleHashPolicy(t *testing.T) {
	seed := func() store.Remote {
		remote := store.NewMemoryRemote()
		_ = remote.UpsertCurriculum(context.Background(), store.CachedCurriculum{
			LanguageSlug: "java",
			ConfigHash:   "old",
			Curriculum:   &types.Curriculum{Language: "cached"},
		})
		return remote
	}

	p := &fakePipeline{hash: "new"}
	m := NewManager(logger.Nop(), p, fixedHash{hash: "new", ok: true}, seed(), Options{})
	cur, err := m.Get(context.Background(), "java")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if cur.Language != "cached" {
		t.Fatalf("expected stale entry to be served, got %q", cur.Language)
	}

	p = &fakePipeline{hash: "new"}
	remote := seed()
	m = NewManager(logger.Nop(), p, fixedHash{hash: "new", ok: true}, remote, Options{StrictInvalidation: true})
	cur, err = m.Get(context.Background(), "java")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if cur.Language != "generated" || p.generates.Load() != 1 {
		t.Fatalf("expected regeneration under strict policy, got %q", cur.Language)
	}
	entry, _ := remote.GetCurriculum(context.Background(), "java")
	if entry.ConfigHash != "new" {
		t.Fatalf("expected shared entry to be replaced, got hash %q", entry.ConfigHash)
	}
}

func TestGetServesSharedEntryWhenConfigUnavailable(t *testing.T) {
	remote := store.NewMemoryRemote()
	_ = remote.UpsertCurriculum(context.Background(), store.CachedCurriculum{
		LanguageSlug: "java",
		ConfigHash:   "h1",
		Curriculum:   &types.Curriculum{Language: "cached"},
	})
	for _, strict := range []bool{false, true} {
		p := &fakePipeline{}
		m := NewManager(logger.Nop(), p, fixedHash{err: errors.New("source down")}, remote, Options{StrictInvalidation: strict})

		cur, err := m.Get(context.Background(), "java")
		if err != nil {
			t.Fatalf("Get(strict=%v): %v", strict, err)
		}
		if cur.Language != "cached" {
			t.Fatalf("strict=%v: got %q", strict, cur.Language)
		}
		if n := p.generates.Load(); n != 0 {
			t.Fatalf("strict=%v: expected no generation, got %d", strict, n)
		}
	}
}

func TestRefreshBypassesSharedEntry(t *testing.T) {
	remote := store.NewMemoryRemote()
	_ = remote.UpsertCurriculum(context.Background(), store.CachedCurriculum{
		LanguageSlug: "java",
		ConfigHash:   "h1",
		Curriculum:   &types.Curriculum{Language: "cached"},
	})
	p := &fakePipeline{hash: "h1"}
	m := NewManager(logger.Nop(), p, fixedHash{hash: "h1", ok: true}, remote, Options{})

	cur, err := m.Refresh(context.Background(), "java")
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if cur.Language != "regenerated" || p.regenerates.Load() != 1 {
		t.Fatalf("expected regeneration, got %q", cur.Language)
	}
	cur, _ = m.Get(context.Background(), "java")
	if cur.Language != "regenerated" {
		t.Fatalf("expected refreshed entry to be served, got %q", cur.Language)
	}
}

func TestRefreshDuringLoadRegeneratesAndWins(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := &fakePipeline{hash: "h1", release: make(chan struct{})}
	remote := store.NewMemoryRemote()
	m := NewManager(logger.Nop(), p, fixedHash{hash: "h1", ok: true}, remote, Options{})

	loaded := make(chan *types.Curriculum)
	go func() {
		cur, _ := m.Get(context.Background(), "java")
		loaded <- cur
	}()
	for p.generates.Load() == 0 {
		time.Sleep(time.Millisecond)
	}

	stop := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
				_, _ = m.Get(ctx, "java")
				cancel()
			}
		}()
	}

	cur, err := m.Refresh(context.Background(), "java")
	close(stop)
	wg.Wait()
	if err != nil || cur.Language != "regenerated" || p.regenerates.Load() != 1 {
		t.Fatalf("Refresh: cur=%+v err=%v regenerates=%d", cur, err, p.regenerates.Load())
	}

	close(p.release)
	if old := <-loaded; old == nil || old.Language != "generated" {
		t.Fatalf("superseded load should still answer its caller, got %+v", old)
	}
	entry, _ := remote.GetCurriculum(context.Background(), "java")
	if entry == nil || entry.Curriculum.Language != "regenerated" {
		t.Fatalf("superseded load overwrote the refreshed entry: %+v", entry)
	}
}

func TestGenerationErrorPropagates(t *testing.T) {
	boom := errors.New("llm down")
	p := &fakePipeline{err: boom}
	m := NewManager(logger.Nop(), p, fixedHash{hash: "h1", ok: true}, store.NewMemoryRemote(), Options{})
	if _, err := m.Get(context.Background(), "java"); !errors.Is(err, boom) {
		t.Fatalf("expected generation error, got %v", err)
	}
}

func TestWaiterCancellationDoesNotAbortLoad(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := &fakePipeline{hash: "h1", release: make(chan struct{})}
	remote := store.NewMemoryRemote()
	m := NewManager(logger.Nop(), p, fixedHash{hash: "h1", ok: true}, remote, Options{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := m.Get(ctx, "java"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}

	done := make(chan *types.Curriculum)
	go func() {
		cur, _ := m.Get(context.Background(), "java")
		done <- cur
	}()
	close(p.release)
	cur := <-done
	if cur == nil || p.generates.Load() != 1 {
		t.Fatalf("expected the original load to complete once, got %d generations", p.generates.Load())
	}
}

func TestGetEnrichedBuildsOnBase(t *testing.T) {
	p := &fakePipeline{hash: "h1"}
	m := NewManager(logger.Nop(), p, fixedHash{hash: "h1", ok: true}, store.NewMemoryRemote(), Options{})
	cur, err := m.GetEnriched(context.Background(), "java")
	if err != nil {
		t.Fatalf("GetEnriched: %v", err)
	}
	if cur.Language != "generated+enriched" {
		t.Fatalf("got %q", cur.Language)
	}
	list, _ := m.List(context.Background())
	if len(list) != 1 || list[0].LanguageSlug != "java" {
		t.Fatalf("unexpected list %+v", list)
	}
}
