package uploads

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type testRefs struct {
	mu   sync.Mutex
	urls map[string]bool
	err  error

	// onCheck corre en cada consulta, fuera del lock (simula requests concurrentes).
	onCheck func(url string)
	checks  int
}

func (r *testRefs) ImageReferenced(_ context.Context, url string) (bool, error) {
	r.mu.Lock()
	hook := r.onCheck
	r.checks++
	r.mu.Unlock()
	if hook != nil {
		hook(url)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	return r.urls[url], nil
}

func stageAt(t *testing.T, svc *Service, id string) Upload {
	t.Helper()
	svc.newID = func() string { return id }
	u, err := svc.Stage(context.Background(), "u1", id+".png", bytes.NewReader(pngBytes))
	require.NoError(t, err)
	return u
}

func TestSweep_CommitsReferencedAndDiscardsOrphans(t *testing.T) {
	svc, repo, store, now := newTestService(t)

	kept := stageAt(t, svc, "kept")
	orphan := stageAt(t, svc, "orphan")

	*now = now.Add(30 * time.Minute)
	fresh := stageAt(t, svc, "fresh")

	refs := &testRefs{urls: map[string]bool{kept.PublicURL: true}}
	rec := NewReconciler(svc, refs, time.Hour, nil)

	*now = now.Add(45 * time.Minute)
	res, err := rec.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SweepResult{Committed: 1, Discarded: 1}, res)

	assert.Equal(t, StatusCommitted, repo.get(kept.ID).Status)
	assert.Equal(t, StatusDiscarded, repo.get(orphan.ID).Status)
	assert.Equal(t, StatusStaged, repo.get(fresh.ID).Status)
	assert.True(t, store.has(kept.Path))
	assert.False(t, store.has(orphan.Path))
	assert.True(t, store.has(fresh.Path))
}

func TestSweep_RetriesFailedDeletes(t *testing.T) {
	svc, repo, store, now := newTestService(t)
	u := stageAt(t, svc, "orphan")

	rec := NewReconciler(svc, &testRefs{}, time.Minute, nil)
	store.failDelete = true

	*now = now.Add(2 * time.Minute)
	res, err := rec.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 1, repo.get(u.ID).Attempts)

	// el fallo actualizó updated_at; hay que esperar otro TTL
	store.failDelete = false
	*now = now.Add(2 * time.Minute)
	res, err = rec.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Discarded)
	assert.Equal(t, StatusDiscarded, repo.get(u.ID).Status)
}

func TestSweep_SkipsRowTouchedDuringCheck(t *testing.T) {
	svc, repo, store, now := newTestService(t)
	u := stageAt(t, svc, "open-form")

	refs := &testRefs{}
	refs.onCheck = func(url string) {
		// el formulario se vuelve a mostrar mientras el barrido decide
		require.NoError(t, svc.Touch(context.Background(), "u1", url))
		refs.onCheck = nil
	}
	rec := NewReconciler(svc, refs, time.Minute, nil)

	*now = now.Add(time.Hour)
	res, err := rec.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SweepResult{Skipped: 1}, res)
	assert.Equal(t, StatusStaged, repo.get(u.ID).Status)
	assert.True(t, store.has(u.Path))

	// sin nuevos toques, pasado otro TTL se descarta
	*now = now.Add(time.Hour)
	res, err = rec.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Discarded)
	assert.False(t, store.has(u.Path))
}

func TestSweep_SkipsRowCommittedDuringCheck(t *testing.T) {
	svc, repo, store, now := newTestService(t)
	u := stageAt(t, svc, "racing")

	refs := &testRefs{}
	refs.onCheck = func(url string) {
		require.NoError(t, svc.Commit(context.Background(), "u1", url))
	}
	rec := NewReconciler(svc, refs, time.Minute, nil)

	*now = now.Add(time.Hour)
	res, err := rec.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SweepResult{Skipped: 1}, res)
	assert.Equal(t, StatusCommitted, repo.get(u.ID).Status)
	assert.True(t, store.has(u.Path))
}

func TestTouch_IgnoresUnknownURL(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	assert.NoError(t, svc.Touch(context.Background(), "u1", "https://elsewhere.test/a.png"))
}

func TestSweep_ReferenceErrorKeepsObject(t *testing.T) {
	svc, repo, store, now := newTestService(t)
	u := stageAt(t, svc, "x")

	rec := NewReconciler(svc, &testRefs{err: errors.New("db down")}, time.Minute, nil)
	*now = now.Add(time.Hour)

	res, err := rec.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, StatusStaged, repo.get(u.ID).Status)
	assert.True(t, store.has(u.Path))
}

func TestRun_StopsOnCancel(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	rec := NewReconciler(svc, &testRefs{}, time.Minute, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- rec.Run(ctx, time.Millisecond) }()

	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("reconciler did not stop")
	}
}
