package showdown

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeSource struct {
	mu    sync.Mutex
	logs  map[string][]string
	err   error
	calls int
}

func (s *fakeSource) Lines(_ context.Context, url string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return append([]string(nil), s.logs[url]...), nil
}

func (s *fakeSource) set(url string, lines ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs[url] = lines
}

func (s *fakeSource) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *fakeSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newTestMonitor(t *testing.T, src Source) *Monitor {
	t.Helper()
	m := NewMonitor(src, Options{
		PollInterval: 5 * time.Millisecond,
		EventBuffer:  10,
		Logger:       zaptest.NewLogger(t),
	})
	m.Start()
	t.Cleanup(m.Stop)
	return m
}

func nextEvent(t *testing.T, m *Monitor) Event {
	t.Helper()
	select {
	case ev := <-m.Events():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func assertNoEvent(t *testing.T, m *Monitor) {
	t.Helper()
	select {
	case ev := <-m.Events():
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMonitorEmitsSwitches(t *testing.T) {
	src := &fakeSource{logs: map[string][]string{}}
	src.set("battle-1",
		"Battle started between Ash and Gary!",
		"Go! Pikachu!",
		"Gary sent out Eevee!",
	)
	m := newTestMonitor(t, src)
	m.SetURL("battle-1")

	assert.Equal(t, Event{Slot: 1, Species: "pikachu"}, nextEvent(t, m))
	assert.Equal(t, Event{Slot: 2, Species: "eevee"}, nextEvent(t, m))
	assertNoEvent(t, m)

	src.set("battle-1",
		"Battle started between Ash and Gary!",
		"Go! Pikachu!",
		"Gary sent out Eevee!",
		"Go! Pikachu!",
		"Go! Squirtle!",
	)
	assert.Equal(t, Event{Slot: 1, Species: "squirtle"}, nextEvent(t, m))
}

func TestMonitorURLChangeResets(t *testing.T) {
	src := &fakeSource{logs: map[string][]string{}}
	src.set("battle-1", "Go! Pikachu!")
	src.set("battle-2", "Go! Pikachu!")
	m := newTestMonitor(t, src)

	m.SetURL("battle-1")
	assert.Equal(t, Event{Slot: 1, Species: "pikachu"}, nextEvent(t, m))

	m.SetURL("battle-2")
	assert.Equal(t, "battle-2", m.URL())
	assert.Equal(t, Event{Slot: 1, Species: "pikachu"}, nextEvent(t, m))
}

func TestMonitorPausedWithoutURL(t *testing.T) {
	src := &fakeSource{logs: map[string][]string{}}
	m := newTestMonitor(t, src)

	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, src.callCount())

	m.SetURL("battle-1")
	require.Eventually(t, func() bool { return src.callCount() > 0 }, time.Second, 5*time.Millisecond)

	m.SetURL("")
	time.Sleep(20 * time.Millisecond)
	calls := src.callCount()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, src.callCount())
}

func TestMonitorSurvivesErrors(t *testing.T) {
	src := &fakeSource{logs: map[string][]string{}}
	src.setErr(errors.New("connection refused"))
	src.set("battle-1", "Go! Charmander!")
	m := newTestMonitor(t, src)
	m.SetURL("battle-1")

	require.Eventually(t, func() bool { return src.callCount() > 2 }, time.Second, 5*time.Millisecond)
	assert.True(t, m.IsRunning())

	src.setErr(nil)
	assert.Equal(t, Event{Slot: 1, Species: "charmander"}, nextEvent(t, m))
}

func TestMonitorStartStop(t *testing.T) {
	m := NewMonitor(&fakeSource{logs: map[string][]string{}}, Options{PollInterval: time.Millisecond})
	assert.False(t, m.IsRunning())

	m.Start()
	m.Start()
	assert.True(t, m.IsRunning())

	m.Stop()
	m.Stop()
	assert.False(t, m.IsRunning())

	m.Start()
	assert.True(t, m.IsRunning())
	m.Stop()
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/battle.log" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("|player|p1|Ash|1\n\n|switch|p1a: Sparky|Pikachu|100/100\n"))
	}))
	defer srv.Close()

	src := NewHTTPSource(time.Second)
	lines, err := src.Lines(context.Background(), srv.URL+"/battle.log")
	require.NoError(t, err)
	assert.Equal(t, []string{"|player|p1|Ash|1", "|switch|p1a: Sparky|Pikachu|100/100"}, lines)

	_, err = src.Lines(context.Background(), srv.URL+"/missing")
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "404"))
}

func TestLogURL(t *testing.T) {
	assert.Equal(t, "https://replay.pokemonshowdown.com/gen9ou-1.log", LogURL("https://replay.pokemonshowdown.com/gen9ou-1"))
	assert.Equal(t, "https://replay.pokemonshowdown.com/gen9ou-1.log", LogURL("https://replay.pokemonshowdown.com/gen9ou-1.log"))
	assert.Equal(t, "http://localhost/battle", LogURL("http://localhost/battle"))
}
