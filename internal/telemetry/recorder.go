// Package telemetry persists gameplay events in the background so the frame
// loop never waits on the database.
package telemetry

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/dapper-duck/internal/games/duck"
	"github.com/vovakirdan/dapper-duck/internal/storage"
)

// Sink is where the recorder writes. *storage.Store satisfies it.
type Sink interface {
	SaveEvents(events []storage.EventRecord) error
	SaveSession(rec *storage.SessionRecord) error
	UnlockAchievement(id, sessionID string) (bool, error)
}

// Options tune the background writer. Zero values use defaults.
type Options struct {
	// Remote tags sessions played over SSH with the user name.
	Remote        string
	Buffer        int
	BatchSize     int
	FlushInterval time.Duration
	Logger        *log.Logger
}

type item struct {
	session string
	event   duck.Event
	at      time.Time
}

// Recorder queues events from the game loop and writes them in batches.
type Recorder struct {
	sink   Sink
	opts   Options
	logger *log.Logger

	events   chan item
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	dropped  atomic.Int64

	// session is only touched by Track, which runs on the game goroutine.
	session string

	mu       sync.Mutex
	unlocked []AchievementDef
}

// NewRecorder starts the background writer.
func NewRecorder(sink Sink, opts Options) *Recorder {
	if opts.Buffer <= 0 {
		opts.Buffer = 1024
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 50
	}
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = 5 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	r := &Recorder{
		sink:   sink,
		opts:   opts,
		logger: logger,
		events: make(chan item, opts.Buffer),
		stop:   make(chan struct{}),
	}
	r.wg.Add(1)
	go r.writer()
	return r
}

// Track enqueues an event. A full queue drops the event, except for
// SessionEnded, which waits for room so the run always reaches the sink.
// SessionStarted opens a new session ID that tags every following event.
func (r *Recorder) Track(e duck.Event) {
	if _, ok := e.(duck.SessionStarted); ok || r.session == "" {
		r.session = uuid.NewString()
	}
	it := item{session: r.session, event: e, at: time.Now()}

	if _, ok := e.(duck.SessionEnded); ok {
		select {
		case r.events <- it:
		case <-r.stop:
			r.dropped.Add(1)
		}
		return
	}
	select {
	case r.events <- it:
	default:
		r.dropped.Add(1)
	}
}

// TrackAll enqueues a drained event batch.
func (r *Recorder) TrackAll(events []duck.Event) {
	for _, e := range events {
		r.Track(e)
	}
}

// Session returns the ID of the current session, or "" before the first event.
func (r *Recorder) Session() string {
	return r.session
}

// Dropped returns how many events were lost to a full queue.
func (r *Recorder) Dropped() int64 {
	return r.dropped.Load()
}

// Unlocked returns and clears achievements unlocked since the last call.
func (r *Recorder) Unlocked() []AchievementDef {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.unlocked
	r.unlocked = nil
	return out
}

// Stop drains the queue, flushes, and waits for the writer to exit.
func (r *Recorder) Stop() {
	r.stopOnce.Do(func() {
		close(r.stop)
		r.wg.Wait()
	})
}

func (r *Recorder) writer() {
	defer r.wg.Done()

	batch := make([]storage.EventRecord, 0, r.opts.BatchSize)
	ticker := time.NewTicker(r.opts.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case it := <-r.events:
			batch = r.handle(it, batch)
		case <-ticker.C:
			batch = r.flush(batch)
		case <-r.stop:
			for {
				select {
				case it := <-r.events:
					batch = r.handle(it, batch)
				default:
					r.flush(batch)
					return
				}
			}
		}
	}
}

func (r *Recorder) handle(it item, batch []storage.EventRecord) []storage.EventRecord {
	payload, err := msgpack.Marshal(it.event)
	if err != nil {
		r.logger.Error("encode event", "event", Name(it.event), "err", err)
	} else {
		batch = append(batch, storage.EventRecord{
			SessionID: it.session,
			Name:      Name(it.event),
			Payload:   payload,
			At:        it.at,
		})
	}

	if ended, ok := it.event.(duck.SessionEnded); ok {
		batch = r.flush(batch)
		r.finish(it, ended)
	}
	if len(batch) >= r.opts.BatchSize {
		batch = r.flush(batch)
	}
	return batch
}

func (r *Recorder) flush(batch []storage.EventRecord) []storage.EventRecord {
	if len(batch) == 0 {
		return batch
	}
	if err := r.sink.SaveEvents(batch); err != nil {
		r.logger.Error("flush events", "count", len(batch), "err", err)
	}
	return batch[:0]
}

func (r *Recorder) finish(it item, ended duck.SessionEnded) {
	rec := storage.SessionRecord{
		ID:        it.session,
		Score:     ended.Score,
		Survival:  ended.Survival,
		Reason:    ended.Reason.String(),
		Snacks:    ended.Stats.Snacks,
		Dodged:    ended.Stats.Dodged,
		Powerups:  ended.Stats.Powerups,
		Remote:    r.opts.Remote,
		CreatedAt: it.at,
	}
	if err := r.sink.SaveSession(&rec); err != nil {
		r.logger.Error("save session", "session", it.session, "err", err)
		return
	}

	for _, def := range Earned(ended.Score, ended.Survival) {
		fresh, err := r.sink.UnlockAchievement(def.ID, it.session)
		if err != nil {
			r.logger.Error("unlock achievement", "id", def.ID, "err", err)
			continue
		}
		if fresh {
			r.logger.Info("achievement unlocked", "id", def.ID, "session", it.session)
			r.mu.Lock()
			r.unlocked = append(r.unlocked, def)
			r.mu.Unlock()
		}
	}
}

// Name returns the stable log name of an event.
func Name(e duck.Event) string {
	switch e.(type) {
	case duck.SessionStarted:
		return "session_started"
	case duck.SessionEnded:
		return "session_ended"
	case duck.RewardCollected:
		return "reward_collected"
	case duck.PowerupCollected:
		return "powerup_collected"
	case duck.PowerupExpired:
		return "powerup_expired"
	case duck.HazardDodged:
		return "hazard_dodged"
	case duck.InsanityStarted:
		return "insanity_started"
	case duck.InsanityEnded:
		return "insanity_ended"
	case duck.ScoreReset:
		return "score_reset"
	default:
		return fmt.Sprintf("%T", e)
	}
}
