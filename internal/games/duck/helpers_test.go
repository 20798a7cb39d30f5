package duck

import (
	"testing"
	"time"

	"github.com/vovakirdan/dapper-duck/internal/config"
)

const millis = time.Millisecond

var epoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// scriptRand replays fixed values. Empty scripts return 0.
type scriptRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *scriptRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[r.fi%len(r.floats)]
	r.fi++
	return v
}

func (r *scriptRand) Intn(n int) int {
	if len(r.ints) == 0 || n <= 0 {
		return 0
	}
	v := r.ints[r.ii%len(r.ints)] % n
	r.ii++
	return v
}

// constRand always returns the same float and 0 from Intn.
func constRand(f float64) *scriptRand {
	return &scriptRand{floats: []float64{f}}
}

func newTestGame(t *testing.T, rng Rand) *Game {
	t.Helper()
	g, err := New(config.DefaultDuckConfig(), rng)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return g
}

func startedGame(t *testing.T, rng Rand) *Game {
	t.Helper()
	g := newTestGame(t, rng)
	if err := g.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	g.DrainEvents()
	return g
}
