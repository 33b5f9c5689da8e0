package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPoker() (*Poker, *testLedger, *testStats) {
	ledger := newTestLedger()
	stats := &testStats{}
	return NewPoker(NewHashSource("client", "server", 42), ledger, stats), ledger, stats
}

func TestPokerDealUsesOneSharedDeck(t *testing.T) {
	game, ledger, _ := newTestPoker()

	require.NoError(t, game.PlaceBet(d("50")))
	require.NoError(t, game.Deal())

	assert.True(t, ledger.balance.Equal(d("950")))
	assert.Equal(t, PhasePlaying, game.Phase())
	assert.Len(t, game.player, 5)
	assert.Len(t, game.dealer, 5)
	assert.Equal(t, DeckSize-10, game.deck.Len())

	seen := map[Card]bool{}
	for _, card := range append(append(Hand{}, game.player...), game.dealer...) {
		assert.False(t, seen[card], "duplicate card %s", card)
		seen[card] = true
	}
}

func TestPokerToggleDiscardBounds(t *testing.T) {
	game, _, _ := newTestPoker()
	require.NoError(t, game.PlaceBet(d("50")))
	require.NoError(t, game.Deal())

	assert.ErrorIs(t, game.ToggleDiscard(-1), ErrInvalidBet)
	assert.ErrorIs(t, game.ToggleDiscard(5), ErrInvalidBet)

	require.NoError(t, game.ToggleDiscard(2))
	assert.True(t, game.discard[2])
	require.NoError(t, game.ToggleDiscard(2))
	assert.False(t, game.discard[2])
}

func TestPokerDrawRequiresSelection(t *testing.T) {
	game, ledger, _ := newTestPoker()
	require.NoError(t, game.PlaceBet(d("50")))
	require.NoError(t, game.Deal())

	assert.ErrorIs(t, game.Draw(), ErrInvalidBet)
	assert.Equal(t, PhasePlaying, game.Phase())
	assert.True(t, ledger.balance.Equal(d("950")))
}

func TestPokerDrawReplacesOnlyMarkedCards(t *testing.T) {
	game, _, _ := newTestPoker()
	require.NoError(t, game.PlaceBet(d("50")))
	require.NoError(t, game.Deal())

	game.player = Hand{{Ace, Spades}, {Ace, Hearts}, {Ace, Diamonds}, {King, Spades}, {Queen, Spades}}
	game.dealer = Hand{{Two, Spades}, {Two, Hearts}, {Nine, Clubs}, {Jack, Diamonds}, {King, Hearts}}
	game.deck = &Deck{cards: []Card{{King, Clubs}}}
	require.NoError(t, game.ToggleDiscard(4))

	require.NoError(t, game.Draw())
	assert.Equal(t, Card{King, Clubs}, game.player[4])
	assert.Equal(t, FullHouse, game.playerRank)
	assert.Equal(t, OnePair, game.dealerRank)
}

func TestPokerWinPaysDouble(t *testing.T) {
	game, ledger, stats := newTestPoker()
	require.NoError(t, game.PlaceBet(d("50")))
	require.NoError(t, game.Deal())

	game.player = Hand{{Ace, Spades}, {Ace, Hearts}, {Nine, Clubs}, {Jack, Diamonds}, {King, Spades}}
	game.dealer = Hand{{Two, Spades}, {Five, Hearts}, {Nine, Diamonds}, {Jack, Clubs}, {King, Hearts}}
	game.deck = &Deck{cards: []Card{{Ace, Diamonds}}}
	require.NoError(t, game.ToggleDiscard(2))

	require.NoError(t, game.Draw())
	assert.Equal(t, PhaseFinished, game.Phase())
	assert.True(t, game.Payout().Equal(d("100")))
	assert.True(t, ledger.balance.Equal(d("1050")))
	assert.Equal(t, 1, stats.wins)
}

func TestPokerPushReturnsStake(t *testing.T) {
	game, ledger, stats := newTestPoker()
	require.NoError(t, game.PlaceBet(d("50")))
	require.NoError(t, game.Deal())

	game.player = Hand{{Ace, Spades}, {Ace, Hearts}, {Nine, Clubs}, {Jack, Diamonds}, {King, Spades}}
	game.dealer = Hand{{Queen, Spades}, {Queen, Hearts}, {Two, Clubs}, {Seven, Diamonds}, {Ten, Hearts}}
	game.deck = &Deck{cards: []Card{{Three, Diamonds}}}
	require.NoError(t, game.ToggleDiscard(2))

	require.NoError(t, game.Draw())
	assert.True(t, game.Payout().Equal(d("50")))
	assert.True(t, ledger.balance.Equal(d("1000")))
	assert.Equal(t, 0, stats.wins)
	assert.Equal(t, 0, stats.losses)
}

func TestPokerDealerWinForfeitsStake(t *testing.T) {
	game, ledger, stats := newTestPoker()
	require.NoError(t, game.PlaceBet(d("50")))
	require.NoError(t, game.Deal())

	game.player = Hand{{Two, Spades}, {Five, Hearts}, {Nine, Clubs}, {Jack, Diamonds}, {King, Spades}}
	game.dealer = Hand{{Queen, Spades}, {Queen, Hearts}, {Two, Clubs}, {Seven, Diamonds}, {Ten, Hearts}}
	game.deck = &Deck{cards: []Card{{Three, Diamonds}}}
	require.NoError(t, game.ToggleDiscard(0))

	require.NoError(t, game.Draw())
	assert.True(t, game.Payout().IsZero())
	assert.True(t, ledger.balance.Equal(d("950")))
	assert.Equal(t, 1, stats.losses)
}

func TestPokerResetClearsRound(t *testing.T) {
	game, _, _ := newTestPoker()
	require.NoError(t, game.PlaceBet(d("50")))
	require.NoError(t, game.Deal())
	assert.ErrorIs(t, game.Reset(), ErrInvalidPhase)

	require.NoError(t, game.ToggleDiscard(0))
	require.NoError(t, game.Draw())

	require.NoError(t, game.Reset())
	assert.Equal(t, PhaseBetting, game.Phase())
	assert.Empty(t, game.player)
	assert.Equal(t, [5]bool{}, game.discard)
	assert.True(t, game.Stake().IsZero())
}
