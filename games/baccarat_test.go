package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBaccarat() (*Baccarat, *testLedger, *testStats) {
	ledger := newTestLedger()
	stats := &testStats{}
	return NewBaccarat(NewHashSource("client", "server", 42), ledger, stats), ledger, stats
}

func intPtr(v int) *int { return &v }

func TestBankerDrawTable(t *testing.T) {
	cases := []struct {
		name        string
		bankerTotal int
		playerThird *int
		want        bool
	}{
		{"two or less always draws", 2, nil, true},
		{"zero draws", 0, intPtr(9), true},
		{"three draws against seven", 3, intPtr(7), true},
		{"three stands against eight", 3, intPtr(8), false},
		{"three draws when player stood", 3, nil, true},
		{"four draws against two", 4, intPtr(2), true},
		{"four stands against eight", 4, intPtr(8), false},
		{"four stands when player stood", 4, nil, false},
		{"five draws against four", 5, intPtr(4), true},
		{"five stands against three", 5, intPtr(3), false},
		{"six draws against six", 6, intPtr(6), true},
		{"six draws against seven", 6, intPtr(7), true},
		{"six stands against five", 6, intPtr(5), false},
		{"six stands when player stood", 6, nil, false},
		{"seven stands", 7, intPtr(6), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, bankerDraws(tc.bankerTotal, tc.playerThird))
		})
	}
}

func TestBaccaratRejectsUnknownCategory(t *testing.T) {
	game, ledger, _ := newTestBaccarat()

	assert.ErrorIs(t, game.PlaceBet("dragon", d("10")), ErrInvalidBet)
	assert.True(t, ledger.balance.Equal(d("1000")))
	assert.Empty(t, game.bets)
}

func TestBaccaratAccumulatesBetsAcrossCategories(t *testing.T) {
	game, ledger, _ := newTestBaccarat()

	require.NoError(t, game.PlaceBet(BaccaratPlayer, d("100")))
	require.NoError(t, game.PlaceBet(BaccaratPlayer, d("50")))
	require.NoError(t, game.PlaceBet(BaccaratTie, d("10")))
	assert.True(t, game.totalBet().Equal(d("160")))
	assert.True(t, game.Stake().Equal(d("160")))

	require.NoError(t, game.Deal())
	assert.True(t, ledger.balance.Equal(d("840")))
	assert.Equal(t, PhaseDealing, game.Phase())
	assert.Len(t, game.player, 2)
	assert.Len(t, game.banker, 2)
}

func TestBaccaratInsufficientTotalStake(t *testing.T) {
	game, _, _ := newTestBaccarat()

	require.NoError(t, game.PlaceBet(BaccaratPlayer, d("900")))
	err := game.PlaceBet(BaccaratBanker, d("200"))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.True(t, game.totalBet().Equal(d("900")))
}

func TestBaccaratPlayerWinPaysDouble(t *testing.T) {
	game, ledger, stats := newTestBaccarat()
	require.NoError(t, game.PlaceBet(BaccaratPlayer, d("100")))
	require.NoError(t, game.Deal())

	game.player = Hand{{Nine, Spades}, {King, Hearts}}
	game.banker = Hand{{Seven, Clubs}, {Queen, Diamonds}}

	require.NoError(t, game.Complete())
	assert.Equal(t, BaccaratPlayer, game.winner)
	assert.Len(t, game.player, 2, "player stands on 9")
	assert.Len(t, game.banker, 2, "banker stands on 7")
	assert.True(t, game.Payout().Equal(d("200")))
	assert.True(t, ledger.balance.Equal(d("1100")))
	assert.Equal(t, 1, stats.wins)
}

func TestBaccaratBankerWinIsFloored(t *testing.T) {
	game, ledger, _ := newTestBaccarat()
	require.NoError(t, game.PlaceBet(BaccaratBanker, d("50")))
	require.NoError(t, game.Deal())

	game.player = Hand{{Seven, Spades}, {King, Hearts}}
	game.banker = Hand{{Nine, Clubs}, {Queen, Diamonds}}

	require.NoError(t, game.Complete())
	assert.Equal(t, BaccaratBanker, game.winner)
	assert.True(t, game.Payout().Equal(d("97")), "50 * 1.95 floored, got %s", game.Payout())
	assert.True(t, ledger.balance.Equal(d("1047")))
}

func TestBaccaratTieForfeitsLineBetsByDefault(t *testing.T) {
	game, ledger, stats := newTestBaccarat()
	require.NoError(t, game.PlaceBet(BaccaratPlayer, d("100")))
	require.NoError(t, game.PlaceBet(BaccaratTie, d("10")))
	require.NoError(t, game.Deal())

	game.player = Hand{{Nine, Spades}, {King, Hearts}}
	game.banker = Hand{{Nine, Clubs}, {Queen, Diamonds}}

	require.NoError(t, game.Complete())
	assert.Equal(t, BaccaratTie, game.winner)
	assert.True(t, game.Payout().Equal(d("90")))
	assert.True(t, ledger.balance.Equal(d("980")))
	assert.Equal(t, 1, stats.losses, "credited less than staked")
}

func TestBaccaratTiePushesLineWhenConfigured(t *testing.T) {
	game, ledger, _ := newTestBaccarat()
	game.payouts.TiePushesLine = true
	require.NoError(t, game.PlaceBet(BaccaratPlayer, d("100")))
	require.NoError(t, game.PlaceBet(BaccaratTie, d("10")))
	require.NoError(t, game.Deal())

	game.player = Hand{{Nine, Spades}, {King, Hearts}}
	game.banker = Hand{{Nine, Clubs}, {Queen, Diamonds}}

	require.NoError(t, game.Complete())
	assert.True(t, game.Payout().Equal(d("190")))
	assert.True(t, ledger.balance.Equal(d("1080")))
}

func TestBaccaratPlayerDrawsOnFiveOrLess(t *testing.T) {
	game, _, _ := newTestBaccarat()
	require.NoError(t, game.PlaceBet(BaccaratPlayer, d("100")))
	require.NoError(t, game.Deal())

	game.player = Hand{{Two, Spades}, {Three, Hearts}}
	game.banker = Hand{{Seven, Clubs}, {Queen, Diamonds}}
	game.deck = &Deck{cards: []Card{{Four, Hearts}}}

	require.NoError(t, game.Complete())
	assert.Len(t, game.player, 3)
	assert.Equal(t, 9, BaccaratTotal(game.player))
	assert.Len(t, game.banker, 2, "banker 7 stands")
}

func TestBaccaratBankerThirdCardUsesPlayerThird(t *testing.T) {
	game, _, _ := newTestBaccarat()
	require.NoError(t, game.PlaceBet(BaccaratBanker, d("100")))
	require.NoError(t, game.Deal())

	// player draws an 8, so banker on 3 must stand
	game.player = Hand{{Two, Spades}, {Three, Hearts}}
	game.banker = Hand{{Three, Clubs}, {Queen, Diamonds}}
	game.deck = &Deck{cards: []Card{{Nine, Spades}, {Eight, Hearts}}}

	require.NoError(t, game.Complete())
	assert.Len(t, game.player, 3)
	assert.Len(t, game.banker, 2)
}

func TestBaccaratCompleteRequiresDealingPhase(t *testing.T) {
	game, _, _ := newTestBaccarat()
	assert.ErrorIs(t, game.Complete(), ErrInvalidPhase)
}

func TestBaccaratResetClearsBets(t *testing.T) {
	game, _, _ := newTestBaccarat()
	require.NoError(t, game.PlaceBet(BaccaratPlayer, d("100")))
	require.NoError(t, game.Deal())
	assert.ErrorIs(t, game.Reset(), ErrInvalidPhase)

	require.NoError(t, game.Complete())
	require.NoError(t, game.Reset())
	assert.Equal(t, PhaseBetting, game.Phase())
	assert.Empty(t, game.bets)
	assert.Empty(t, game.player)
	assert.True(t, game.Stake().IsZero())
}
