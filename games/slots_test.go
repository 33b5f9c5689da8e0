package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSlots(symbols ...int) (*SlotMachine, *testLedger, *testStats) {
	ledger := newTestLedger()
	stats := &testStats{}
	return NewSlotMachine(&scriptedRNG{values: symbols}, ledger, stats), ledger, stats
}

func TestSlotSymbolValues(t *testing.T) {
	assert.True(t, SlotCherry.Value().Equal(d("1")))
	assert.True(t, SlotSeven.Value().Equal(d("10")))
	assert.True(t, SlotStar.Value().Equal(d("50")))
	assert.Equal(t, "Star", SlotStar.String())
	assert.True(t, SlotSymbol(99).Value().IsZero())
}

func TestSlotsSpinWithoutBet(t *testing.T) {
	game, ledger, _ := newTestSlots()

	assert.ErrorIs(t, game.Spin(), ErrInvalidBet)
	assert.Equal(t, PhaseBetting, game.Phase())
	assert.True(t, ledger.balance.Equal(d("1000")))
}

func TestSlotsLosingGridForfeitsBet(t *testing.T) {
	// every symbol appears at most twice and no line matches
	game, ledger, stats := newTestSlots(0, 1, 2, 3, 4, 5, 6, 7, 8)
	require.NoError(t, game.PlaceBet(d("10")))

	require.NoError(t, game.Spin())
	assert.Equal(t, PhaseFinished, game.Phase())
	assert.True(t, game.Payout().IsZero())
	assert.True(t, ledger.balance.Equal(d("990")))
	assert.Equal(t, 1, stats.losses)
}

func TestSlotsScatterPaysWithoutLine(t *testing.T) {
	// three cherries off any payline
	game, ledger, stats := newTestSlots(0, 1, 0, 2, 3, 4, 5, 0, 6)
	require.NoError(t, game.PlaceBet(d("10")))

	require.NoError(t, game.Spin())
	assert.True(t, game.Payout().Equal(d("30")), "cherry value 1 x bet x 3, got %s", game.Payout())
	assert.True(t, ledger.balance.Equal(d("1020")))
	assert.Equal(t, 1, stats.wins)
}

func TestSlotsLineAndScatterAreAdditive(t *testing.T) {
	// top row of sevens plus scattered filler
	game, ledger, _ := newTestSlots(6, 6, 6, 0, 1, 2, 3, 4, 5)
	require.NoError(t, game.PlaceBet(d("1")))

	require.NoError(t, game.Spin())
	// line: 10*1*10 = 100, scatter: 10*1*3 = 30
	assert.True(t, game.Payout().Equal(d("130")), "got %s", game.Payout())
	assert.True(t, ledger.balance.Equal(d("1129")))
}

func TestSlotsFullGridOfStars(t *testing.T) {
	game, ledger, _ := newTestSlots(8, 8, 8, 8, 8, 8, 8, 8, 8)
	require.NoError(t, game.PlaceBet(d("1")))

	require.NoError(t, game.Spin())
	// 8 lines at 50*1*10 plus a 9-symbol scatter at 50*1*9
	assert.True(t, game.Payout().Equal(d("4450")), "got %s", game.Payout())
	assert.True(t, ledger.balance.Equal(d("5449")))
}

func TestSlotsDiagonalLinePays(t *testing.T) {
	// bells on the main diagonal only
	game, _, _ := newTestSlots(4, 0, 1, 2, 4, 3, 5, 6, 4)
	require.NoError(t, game.PlaceBet(d("2")))

	require.NoError(t, game.Spin())
	// line: 5*2*10 = 100, scatter: 5*2*3 = 30
	assert.True(t, game.Payout().Equal(d("130")), "got %s", game.Payout())
}

func TestSlotsBetsAccumulate(t *testing.T) {
	game, ledger, _ := newTestSlots(0, 1, 2, 3, 4, 5, 6, 7, 8)
	require.NoError(t, game.PlaceBet(d("10")))
	require.NoError(t, game.PlaceBet(d("15")))
	assert.True(t, game.bet.Equal(d("25")))
	assert.True(t, game.Stake().Equal(d("25")))

	require.NoError(t, game.Spin())
	assert.True(t, game.Stake().Equal(d("25")))
	assert.True(t, ledger.balance.Equal(d("975")))
}

func TestSlotsResetClearsRound(t *testing.T) {
	game, _, _ := newTestSlots(0, 1, 2, 3, 4, 5, 6, 7, 8)
	require.NoError(t, game.PlaceBet(d("10")))
	require.NoError(t, game.Spin())
	assert.ErrorIs(t, game.Spin(), ErrInvalidPhase)

	require.NoError(t, game.Reset())
	assert.Equal(t, PhaseBetting, game.Phase())
	assert.True(t, game.bet.IsZero())
	assert.True(t, game.Payout().IsZero())
	assert.Equal(t, [3][3]SlotSymbol{}, game.grid)
}
