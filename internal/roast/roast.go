package roast

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/jmhodges/clock"
)

// cooldown between roasts per requesting user
const cooldown = 5 * time.Minute

var lines = []string{
	"%s, you're so slow, JubJub could finish a Chaos Trial before you even start!",
	"%s, your vibes are so off, even JubJub's chaos can't fix you!",
	"%s, you're like a GIF that won't load, and JubJub's disappointed!",
	"%s, you call that a meme? JubJub's seen better from a bot!",
	"%s, you're so quiet, JubJub thought you were a ghost in the server!",
	"%s, your energy's so low, JubJub's red eyes are brighter than you!",
	"%s, you're so predictable, JubJub could roast you in her sleep!",
	"%s, you're trying so hard, but JubJub's chaos still outshines you!",
	"%s, you're like a reminder that never triggers, and JubJub's bored!",
	"%s, your chaos level is so low, JubJub's yellow pupils are judging you!",
}

// CooldownError tells the requester how long until they can roast again.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("on cooldown for another %s", e.Remaining.Round(time.Second))
}

// Generator produces a roast for a target; the optional AI client
// implements it. Failures fall back to the built-in lines.
type Generator interface {
	Roast(ctx context.Context, target string) (string, error)
}

// Roaster hands out roast lines with a per-user cooldown. Cooldown state
// is in-process only: it lives from start to stop and is deliberately not
// persisted.
type Roaster struct {
	mu       sync.Mutex
	lastUsed map[int64]time.Time
	clk      clock.Clock
	gen      Generator // may be nil
}

func New(gen Generator) *Roaster {
	return &Roaster{
		lastUsed: make(map[int64]time.Time),
		clk:      clock.New(),
		gen:      gen,
	}
}

// NewWithClock is used by tests to pin time.
func NewWithClock(gen Generator, clk clock.Clock) *Roaster {
	r := New(gen)
	r.clk = clk
	return r
}

// Roast returns a roast aimed at target, spending the requester's
// cooldown. Returns *CooldownError while the requester is still cooling
// off.
func (r *Roaster) Roast(ctx context.Context, requesterID int64, target string) (string, error) {
	now := r.clk.Now()

	r.mu.Lock()
	if last, ok := r.lastUsed[requesterID]; ok {
		if remaining := cooldown - now.Sub(last); remaining > 0 {
			r.mu.Unlock()
			return "", &CooldownError{Remaining: remaining}
		}
	}
	r.lastUsed[requesterID] = now
	r.mu.Unlock()

	if r.gen != nil {
		text, err := r.gen.Roast(ctx, target)
		if err == nil && text != "" {
			return text, nil
		}
		if err != nil {
			log.Printf("AI roast failed, using built-in line: %v", err)
		}
	}

	return fmt.Sprintf(lines[rand.Intn(len(lines))], target), nil
}
