package game_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat4g/internal/app/domain/game"
)

func TestPayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		house, player int
		wager         int
		want          int
	}{
		{"equal rolls pay double", 50, 50, 10, 20},
		{"gap of 20 pays x1.5", 60, 40, 10, 15},
		{"gap of 25 pays x1.5", 75, 50, 100, 150},
		{"gap of 40 pays x1.25", 70, 30, 100, 125},
		{"gap of 50 pays x1.25", 100, 50, 4, 5},
		{"gap of 60 loses everything", 90, 30, 10, 0},
		{"player advantage mirrors house advantage", 30, 90, 10, 0},
		{"small player advantage still wins", 40, 60, 10, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, game.Payout(tt.house, tt.player, tt.wager))
		})
	}
}

func TestPlayUsesInjectedRolls(t *testing.T) {
	t.Parallel()

	rolls := []int{60, 40}
	g := game.NewGambleWithRoll(func() int {
		r := rolls[0]
		rolls = rolls[1:]
		return r
	})

	payout, house, player := g.Play(10)
	assert.Equal(t, 60, house)
	assert.Equal(t, 40, player)
	assert.Equal(t, 15, payout)
}

func TestPlayBounds(t *testing.T) {
	t.Parallel()

	g := game.NewGamble()
	for i := 0; i < 200; i++ {
		payout, house, player := g.Play(8)
		assert.GreaterOrEqual(t, house, 0)
		assert.LessOrEqual(t, house, 100)
		assert.GreaterOrEqual(t, player, 0)
		assert.LessOrEqual(t, player, 100)
		assert.Contains(t, []int{0, 10, 12, 16}, payout)
	}
}

func TestRandomLine(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "jokes.txt")
	require.NoError(t, game.AppendLine(path, "first joke"))
	require.NoError(t, game.AppendLine(path, "second joke"))

	line, err := game.RandomLine(path)
	require.NoError(t, err)
	assert.Contains(t, []string{"first joke", "second joke"}, line)
}

func TestRandomLineEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, game.AppendLine(path, ""))

	_, err := game.RandomLine(path)
	assert.ErrorIs(t, err, game.ErrNoLines)
}
