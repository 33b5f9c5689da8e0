package games

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBlackjack() (*Blackjack, *testLedger, *testStats) {
	ledger := newTestLedger()
	stats := &testStats{}
	return NewBlackjack(NewHashSource("client", "server", 42), ledger, stats), ledger, stats
}

func TestBlackjackPlaceBetAndDeal(t *testing.T) {
	game, ledger, _ := newTestBlackjack()

	require.NoError(t, game.PlaceBet(d("100")))
	assert.True(t, ledger.balance.Equal(d("1000")), "betting must not move funds")

	require.NoError(t, game.Deal())
	assert.True(t, ledger.balance.Equal(d("900")))
	assert.Equal(t, PhasePlaying, game.Phase())
	assert.Len(t, game.player, 2)
	assert.Len(t, game.dealer, 2)
	assert.Equal(t, DeckSize-4, game.deck.Len())
}

func TestBlackjackRejectsOutOfPhaseOperations(t *testing.T) {
	game, ledger, _ := newTestBlackjack()

	assert.ErrorIs(t, game.Hit(), ErrInvalidPhase)
	assert.ErrorIs(t, game.Stand(), ErrInvalidPhase)
	assert.ErrorIs(t, game.Deal(), ErrInvalidBet)

	require.NoError(t, game.PlaceBet(d("100")))
	require.NoError(t, game.Deal())
	assert.ErrorIs(t, game.PlaceBet(d("50")), ErrInvalidPhase)
	assert.ErrorIs(t, game.Deal(), ErrInvalidPhase)
	assert.ErrorIs(t, game.Reset(), ErrInvalidPhase)
	assert.True(t, ledger.balance.Equal(d("900")), "rejected operations must not move funds")
}

func TestBlackjackInsufficientFundsIsNoOp(t *testing.T) {
	game, ledger, _ := newTestBlackjack()

	err := game.PlaceBet(d("1001"))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, PhaseBetting, game.Phase())
	assert.True(t, ledger.balance.Equal(d("1000")))
	assert.True(t, game.Stake().IsZero())
}

func TestBlackjackStandPlayerWins(t *testing.T) {
	game, ledger, stats := newTestBlackjack()
	require.NoError(t, game.PlaceBet(d("100")))
	require.NoError(t, game.Deal())

	game.player = Hand{{King, Spades}, {Queen, Hearts}}
	game.dealer = Hand{{King, Clubs}, {Eight, Diamonds}}

	require.NoError(t, game.Stand())
	assert.Equal(t, PhaseFinished, game.Phase())
	assert.True(t, game.Payout().Equal(d("200")))
	assert.True(t, ledger.balance.Equal(d("1100")))
	assert.Equal(t, 1, stats.wins)
	assert.Equal(t, 0, stats.losses)
}

func TestBlackjackStandDealerDrawsToSeventeen(t *testing.T) {
	game, _, _ := newTestBlackjack()
	require.NoError(t, game.PlaceBet(d("100")))
	require.NoError(t, game.Deal())

	game.player = Hand{{King, Spades}, {Nine, Hearts}}
	game.dealer = Hand{{Ten, Clubs}, {Two, Diamonds}}
	game.deck = &Deck{cards: []Card{{Six, Hearts}}}

	require.NoError(t, game.Stand())
	assert.Equal(t, 18, BlackjackTotal(game.dealer))
	assert.True(t, game.Payout().Equal(d("200")))
}

func TestBlackjackHitBustLosesStake(t *testing.T) {
	game, ledger, stats := newTestBlackjack()
	require.NoError(t, game.PlaceBet(d("100")))
	require.NoError(t, game.Deal())

	game.player = Hand{{King, Spades}, {Nine, Hearts}}
	game.deck = &Deck{cards: []Card{{Five, Clubs}}}

	require.NoError(t, game.Hit())
	assert.Equal(t, PhaseFinished, game.Phase())
	assert.True(t, game.Payout().IsZero())
	assert.True(t, ledger.balance.Equal(d("900")))
	assert.Equal(t, 1, stats.losses)
}

func TestBlackjackHitToTwentyOnePaysNatural(t *testing.T) {
	game, ledger, _ := newTestBlackjack()
	require.NoError(t, game.PlaceBet(d("100")))
	require.NoError(t, game.Deal())

	game.player = Hand{{King, Spades}, {Seven, Hearts}}
	game.deck = &Deck{cards: []Card{{Four, Clubs}}}

	require.NoError(t, game.Hit())
	assert.True(t, game.Payout().Equal(d("250")))
	assert.True(t, ledger.balance.Equal(d("1150")))
}

func TestBlackjackPushReturnsStakeAndSkipsStats(t *testing.T) {
	game, ledger, stats := newTestBlackjack()
	require.NoError(t, game.PlaceBet(d("100")))
	require.NoError(t, game.Deal())

	game.player = Hand{{King, Spades}, {Nine, Hearts}}
	game.dealer = Hand{{Queen, Clubs}, {Nine, Diamonds}}

	require.NoError(t, game.Stand())
	assert.True(t, game.Payout().Equal(d("100")))
	assert.True(t, ledger.balance.Equal(d("1000")))
	assert.Equal(t, 0, stats.wins)
	assert.Equal(t, 0, stats.losses)
}

func TestBlackjackDealerBust(t *testing.T) {
	game, ledger, _ := newTestBlackjack()
	require.NoError(t, game.PlaceBet(d("100")))
	require.NoError(t, game.Deal())

	game.player = Hand{{King, Spades}, {Nine, Hearts}}
	game.dealer = Hand{{Ten, Clubs}, {Six, Diamonds}}
	game.deck = &Deck{cards: []Card{{King, Hearts}}}

	require.NoError(t, game.Stand())
	assert.True(t, game.Payout().Equal(d("200")))
	assert.True(t, ledger.balance.Equal(d("1100")))
}

func TestBlackjackResetStartsFreshRound(t *testing.T) {
	game, _, _ := newTestBlackjack()
	require.NoError(t, game.PlaceBet(d("100")))
	require.NoError(t, game.Deal())

	game.player = Hand{{King, Spades}, {Queen, Hearts}}
	game.dealer = Hand{{King, Clubs}, {Eight, Diamonds}}
	require.NoError(t, game.Stand())

	require.NoError(t, game.Reset())
	assert.Equal(t, PhaseBetting, game.Phase())
	assert.Empty(t, game.player)
	assert.Empty(t, game.dealer)
	assert.True(t, game.Stake().IsZero())
	assert.True(t, game.Payout().IsZero())

	// idempotent from betting
	require.NoError(t, game.Reset())
	assert.Equal(t, PhaseBetting, game.Phase())
}

func TestBlackjackRoundConservesFunds(t *testing.T) {
	game, ledger, _ := newTestBlackjack()
	require.NoError(t, game.PlaceBet(d("100")))
	require.NoError(t, game.Deal())
	require.NoError(t, game.Stand())

	expected := decimal.New(1000, 0).Sub(game.Stake()).Add(game.Payout())
	assert.True(t, ledger.balance.Equal(expected))
}
