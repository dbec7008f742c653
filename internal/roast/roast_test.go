package roast

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jmhodges/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	text string
	err  error
}

func (g *stubGenerator) Roast(_ context.Context, target string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.text + " " + target, nil
}

func TestRoastMentionsTarget(t *testing.T) {
	clk := clock.NewFake()
	r := NewWithClock(nil, clk)

	text, err := r.Roast(context.Background(), 1, "@victim")
	require.NoError(t, err)
	assert.Contains(t, text, "@victim")
}

func TestRoastCooldown(t *testing.T) {
	clk := clock.NewFake()
	r := NewWithClock(nil, clk)

	_, err := r.Roast(context.Background(), 1, "@victim")
	require.NoError(t, err)

	_, err = r.Roast(context.Background(), 1, "@victim")
	var cd *CooldownError
	require.ErrorAs(t, err, &cd)
	assert.Greater(t, cd.Remaining, time.Duration(0))

	// Other users are not affected.
	_, err = r.Roast(context.Background(), 2, "@victim")
	assert.NoError(t, err)

	// Cooldown expires.
	clk.Add(cooldown)
	_, err = r.Roast(context.Background(), 1, "@victim")
	assert.NoError(t, err)
}

func TestRoastUsesGenerator(t *testing.T) {
	clk := clock.NewFake()
	r := NewWithClock(&stubGenerator{text: "custom burn for"}, clk)

	text, err := r.Roast(context.Background(), 1, "@victim")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "custom burn for"))
}

func TestRoastFallsBackWhenGeneratorFails(t *testing.T) {
	clk := clock.NewFake()
	r := NewWithClock(&stubGenerator{err: errors.New("api down")}, clk)

	text, err := r.Roast(context.Background(), 1, "@victim")
	require.NoError(t, err)
	assert.Contains(t, text, "@victim")
	assert.Contains(t, text, "JubJub")
}
