package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoulette(pocket int) (*Roulette, *testLedger, *testStats) {
	ledger := newTestLedger()
	stats := &testStats{}
	return NewRoulette(&scriptedRNG{values: []int{pocket}}, ledger, stats), ledger, stats
}

func TestRouletteRejectsStraightBets(t *testing.T) {
	game, _, _ := newTestRoulette(17)

	assert.ErrorIs(t, game.PlaceBet(RouletteStraight, d("10")), ErrInvalidBet)
	assert.ErrorIs(t, game.PlaceBet("corner", d("10")), ErrInvalidBet)
	assert.Empty(t, game.bets)
}

func TestRouletteSpinWithoutBets(t *testing.T) {
	game, ledger, _ := newTestRoulette(17)

	assert.ErrorIs(t, game.Spin(), ErrInvalidBet)
	assert.Equal(t, PhaseBetting, game.Phase())
	assert.True(t, ledger.balance.Equal(d("1000")))
}

func TestRouletteRedWinPaysEvenMoney(t *testing.T) {
	game, ledger, stats := newTestRoulette(32)
	require.NoError(t, game.PlaceBet(RouletteRed, d("10")))
	assert.True(t, game.Stake().Equal(d("10")))

	require.NoError(t, game.Spin())
	assert.Equal(t, PhaseFinished, game.Phase())
	assert.Equal(t, 32, game.number)
	assert.True(t, game.Payout().Equal(d("20")))
	assert.True(t, ledger.balance.Equal(d("1010")))
	assert.Equal(t, 1, stats.wins)
}

func TestRouletteDozenPaysTwoToOne(t *testing.T) {
	game, ledger, _ := newTestRoulette(5)
	require.NoError(t, game.PlaceBet(RouletteDozen1, d("10")))

	require.NoError(t, game.Spin())
	assert.True(t, game.Payout().Equal(d("30")))
	assert.True(t, ledger.balance.Equal(d("1020")))
}

func TestRouletteColumnMembership(t *testing.T) {
	assert.True(t, rouletteWins(RouletteColumn1, 1))
	assert.True(t, rouletteWins(RouletteColumn2, 5))
	assert.True(t, rouletteWins(RouletteColumn3, 9))
	assert.False(t, rouletteWins(RouletteColumn3, 10))
	assert.True(t, rouletteWins(RouletteColumn3, 36))
}

func TestRouletteZeroLosesOutsideBets(t *testing.T) {
	game, ledger, stats := newTestRoulette(0)
	require.NoError(t, game.PlaceBet(RouletteRed, d("10")))
	require.NoError(t, game.PlaceBet(RouletteEven, d("10")))
	require.NoError(t, game.PlaceBet(RouletteLow, d("10")))

	require.NoError(t, game.Spin())
	assert.Equal(t, 0, game.number)
	assert.True(t, game.Payout().IsZero())
	assert.True(t, ledger.balance.Equal(d("970")))
	assert.Equal(t, 1, stats.losses)
}

func TestRouletteSettlesEveryCategory(t *testing.T) {
	// 14 is red, even, low, dozen2 and column2
	game, ledger, _ := newTestRoulette(14)
	require.NoError(t, game.PlaceBet(RouletteRed, d("10")))
	require.NoError(t, game.PlaceBet(RouletteBlack, d("10")))
	require.NoError(t, game.PlaceBet(RouletteEven, d("10")))
	require.NoError(t, game.PlaceBet(RouletteLow, d("10")))
	require.NoError(t, game.PlaceBet(RouletteDozen2, d("10")))
	require.NoError(t, game.PlaceBet(RouletteColumn2, d("10")))

	require.NoError(t, game.Spin())
	// three even-money wins at $20 plus dozen and column at $30
	assert.True(t, game.Payout().Equal(d("120")))
	assert.True(t, ledger.balance.Equal(d("1060")))
}

func TestRouletteColorNames(t *testing.T) {
	assert.Equal(t, "green", rouletteColor(0))
	assert.Equal(t, "red", rouletteColor(1))
	assert.Equal(t, "black", rouletteColor(2))
	assert.Equal(t, "red", rouletteColor(36))
	assert.Equal(t, "black", rouletteColor(35))
}

func TestRouletteResetClearsRound(t *testing.T) {
	game, _, _ := newTestRoulette(32)
	require.NoError(t, game.PlaceBet(RouletteRed, d("10")))
	require.NoError(t, game.Spin())
	assert.ErrorIs(t, game.PlaceBet(RouletteRed, d("10")), ErrInvalidPhase)

	require.NoError(t, game.Reset())
	assert.Equal(t, PhaseBetting, game.Phase())
	assert.Empty(t, game.bets)
	assert.True(t, game.Stake().IsZero())
	assert.True(t, game.Payout().IsZero())
}
