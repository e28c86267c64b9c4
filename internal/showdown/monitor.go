package showdown

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/chenwei791129/pokehelper/pkg/pokeshowdown"
)

// Options configures a Monitor.
type Options struct {
	PollInterval time.Duration
	LoadDelay    time.Duration
	EventBuffer  int
	Logger       *zap.Logger
}

// Monitor polls a battle log in the background and publishes an Event
// whenever a side switches Pokemon. It never touches the UI; consumers
// drain Events on their own goroutine.
type Monitor struct {
	source   Source
	logger   *zap.Logger
	interval time.Duration
	delay    time.Duration

	stopChan chan struct{}
	cancel   context.CancelFunc
	events   chan Event

	// Battle being followed, guarded by mu
	url    string
	urlGen int
	mu     sync.Mutex

	// Running state
	running bool
	wg      sync.WaitGroup
}

// NewMonitor creates a new monitor instance
func NewMonitor(source Source, opts Options) *Monitor {
	if opts.PollInterval <= 0 {
		opts.PollInterval = pokeshowdown.DefaultPollInterval
	}
	if opts.EventBuffer < 1 {
		opts.EventBuffer = pokeshowdown.DefaultEventBuffer
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Monitor{
		source:   source,
		logger:   opts.Logger,
		interval: opts.PollInterval,
		delay:    opts.LoadDelay,
		events:   make(chan Event, opts.EventBuffer),
	}
}

// Events returns the channel Events are published on. It is never closed.
func (m *Monitor) Events() <-chan Event {
	return m.events
}

// SetURL switches the battle being followed. An empty url pauses polling.
// Safe to call from any goroutine.
func (m *Monitor) SetURL(url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.url = url
	m.urlGen++
}

// URL returns the battle being followed.
func (m *Monitor) URL() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.url
}

// Start begins the polling loop
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.stopChan = make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.pollLoop(ctx)
	}()
}

// Stop stops the polling loop and waits for it to exit
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	close(m.stopChan)
	m.cancel()
	m.mu.Unlock()

	m.wg.Wait()
}

// IsRunning returns whether the monitor is running
func (m *Monitor) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// pollLoop reads the log every interval and feeds unseen lines to a Parser
func (m *Monitor) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	var (
		parser    Parser
		seen      int
		gen       = -1
		readyAt   time.Time
		lastError string
	)

	for {
		select {
		case <-m.stopChan:
			return
		case now := <-ticker.C:
			m.mu.Lock()
			url, urlGen := m.url, m.urlGen
			m.mu.Unlock()

			if urlGen != gen {
				gen = urlGen
				parser.Reset()
				seen = 0
				readyAt = now.Add(m.delay)
				lastError = ""
				if url != "" {
					m.logger.Info("Following battle", zap.String("url", url))
				}
			}
			if url == "" || now.Before(readyAt) {
				continue
			}

			lines, err := m.source.Lines(ctx, url)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				// Log each distinct failure once while it persists
				if err.Error() != lastError {
					m.logger.Warn("Failed to read battle log", zap.String("url", url), zap.Error(err))
					lastError = err.Error()
				}
				continue
			}
			lastError = ""

			if len(lines) < seen {
				// Log was replaced, start over
				parser.Reset()
				seen = 0
			}
			for _, line := range lines[seen:] {
				if ev, ok := parser.Feed(line); ok {
					m.sendEvent(ev)
				}
			}
			seen = len(lines)
		}
	}
}

// sendEvent publishes an event without blocking the poller
func (m *Monitor) sendEvent(ev Event) {
	select {
	case m.events <- ev:
		m.logger.Debug("Pokemon switched in", zap.Int("slot", ev.Slot), zap.String("species", ev.Species))
	default:
		m.logger.Warn("Event channel full, dropping event", zap.Int("slot", ev.Slot), zap.String("species", ev.Species))
	}
}
