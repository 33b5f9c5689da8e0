package games

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
)

type BaccaratBet string

const (
	BaccaratPlayer BaccaratBet = "player"
	BaccaratBanker BaccaratBet = "banker"
	BaccaratTie    BaccaratBet = "tie"
)

// BaccaratPayouts are multipliers applied to the winning category's stake.
// The banker multiplier already carries the 5% commission and its credit is
// floored to a whole amount. TiePushesLine controls whether a tie outcome
// returns player/banker stakes instead of forfeiting them.
type BaccaratPayouts struct {
	Player        decimal.Decimal `json:"player"`
	Banker        decimal.Decimal `json:"banker"`
	Tie           decimal.Decimal `json:"tie"`
	TiePushesLine bool            `json:"tie_pushes_line"`
}

func DefaultBaccaratPayouts() BaccaratPayouts {
	banker, _ := decimal.NewFromString("1.95")
	return BaccaratPayouts{
		Player: decimal.New(2, 0),
		Banker: banker,
		Tie:    decimal.New(9, 0),
	}
}

type Baccarat struct {
	rng     RNG
	ledger  Ledger
	stats   StatsRecorder
	payouts BaccaratPayouts

	phase   Phase
	deck    *Deck
	player  Hand
	banker  Hand
	bets    map[BaccaratBet]decimal.Decimal
	stake   decimal.Decimal
	payout  decimal.Decimal
	winner  BaccaratBet
	message string
}

type BaccaratSnapshot struct {
	Phase       Phase                           `json:"phase"`
	PlayerHand  Hand                            `json:"player_hand"`
	BankerHand  Hand                            `json:"banker_hand"`
	PlayerScore int                             `json:"player_score"`
	BankerScore int                             `json:"banker_score"`
	Bets        map[BaccaratBet]decimal.Decimal `json:"bets"`
	Winner      BaccaratBet                     `json:"winner,omitempty"`
	Stake       decimal.Decimal                 `json:"stake"`
	Payout      decimal.Decimal                 `json:"payout"`
	Message     string                          `json:"message"`
}

func NewBaccarat(rng RNG, ledger Ledger, stats StatsRecorder) *Baccarat {
	return &Baccarat{
		rng:     rng,
		ledger:  ledger,
		stats:   stats,
		payouts: DefaultBaccaratPayouts(),
		phase:   PhaseBetting,
		bets:    make(map[BaccaratBet]decimal.Decimal),
		message: "Place your bets!",
	}
}

func (g *Baccarat) Name() string            { return GameBaccarat }
func (g *Baccarat) Phase() Phase            { return g.phase }
func (g *Baccarat) Message() string         { return g.message }
func (g *Baccarat) Stake() decimal.Decimal  { return g.totalBet() }
func (g *Baccarat) Payout() decimal.Decimal { return g.payout }

func (g *Baccarat) Snapshot() any {
	bets := make(map[BaccaratBet]decimal.Decimal, len(g.bets))
	for category, amount := range g.bets {
		bets[category] = amount
	}
	return BaccaratSnapshot{
		Phase:       g.phase,
		PlayerHand:  append(Hand{}, g.player...),
		BankerHand:  append(Hand{}, g.banker...),
		PlayerScore: BaccaratTotal(g.player),
		BankerScore: BaccaratTotal(g.banker),
		Bets:        bets,
		Winner:      g.winner,
		Stake:       g.stake,
		Payout:      g.payout,
		Message:     g.message,
	}
}

func (g *Baccarat) totalBet() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range g.bets {
		total = total.Add(amount)
	}
	return total
}

// PlaceBet adds to one of the three categories; all three may be staked in the
// same round.
func (g *Baccarat) PlaceBet(category BaccaratBet, amount decimal.Decimal) error {
	if g.phase != PhaseBetting {
		return fmt.Errorf("place bet: %w", ErrInvalidPhase)
	}
	switch category {
	case BaccaratPlayer, BaccaratBanker, BaccaratTie:
	default:
		return fmt.Errorf("place bet: %w: unknown category %q", ErrInvalidBet, category)
	}
	if err := checkStake(g.ledger, g.totalBet(), amount); err != nil {
		return fmt.Errorf("place bet: %w", err)
	}
	g.bets[category] = g.bets[category].Add(amount)
	g.message = fmt.Sprintf("Bet placed: %s - $%s", category, amount)
	return nil
}

// Deal debits the total stake and deals two cards each to player and banker.
func (g *Baccarat) Deal() error {
	if g.phase != PhaseBetting {
		return fmt.Errorf("deal: %w", ErrInvalidPhase)
	}
	total := g.totalBet()
	if !total.IsPositive() {
		return fmt.Errorf("deal: %w: no bets placed", ErrInvalidBet)
	}
	if _, err := g.ledger.ApplyDelta(total.Neg()); err != nil {
		return fmt.Errorf("deal: %w", err)
	}
	g.stake = total

	g.deck = NewShuffledDeck(g.rng)
	g.player = nil
	g.banker = nil
	for range 2 {
		if err := draw(g.deck, &g.player); err != nil {
			return err
		}
	}
	for range 2 {
		if err := draw(g.deck, &g.banker); err != nil {
			return err
		}
	}
	g.phase = PhaseDealing
	g.message = "Cards dealt!"
	return nil
}

// bankerDraws implements the fixed third-card table. playerThird is nil when
// the player stood on two cards.
func bankerDraws(bankerTotal int, playerThird *int) bool {
	third := -1
	if playerThird != nil {
		third = *playerThird
	}
	switch {
	case bankerTotal <= 2:
		return true
	case bankerTotal == 3:
		return third != 8
	case bankerTotal == 4:
		return third >= 2 && third <= 7
	case bankerTotal == 5:
		return third >= 4 && third <= 7
	case bankerTotal == 6:
		return third == 6 || third == 7
	}
	return false
}

// Complete applies the third-card rules, evaluates both hands and settles
// every staked category.
func (g *Baccarat) Complete() error {
	if g.phase != PhaseDealing {
		return fmt.Errorf("complete: %w", ErrInvalidPhase)
	}

	var playerThird *int
	if BaccaratTotal(g.player) <= 5 {
		if err := draw(g.deck, &g.player); err != nil {
			return err
		}
		value := BaccaratValue(g.player[2].Rank)
		playerThird = &value
	}
	if bankerDraws(BaccaratTotal(g.banker), playerThird) {
		if err := draw(g.deck, &g.banker); err != nil {
			return err
		}
	}

	playerScore := BaccaratTotal(g.player)
	bankerScore := BaccaratTotal(g.banker)
	switch {
	case playerScore > bankerScore:
		g.winner = BaccaratPlayer
	case bankerScore > playerScore:
		g.winner = BaccaratBanker
	default:
		g.winner = BaccaratTie
	}

	credit := decimal.Zero
	switch g.winner {
	case BaccaratPlayer:
		credit = g.bets[BaccaratPlayer].Mul(g.payouts.Player)
	case BaccaratBanker:
		credit = g.bets[BaccaratBanker].Mul(g.payouts.Banker).Floor()
	case BaccaratTie:
		credit = g.bets[BaccaratTie].Mul(g.payouts.Tie)
		if g.payouts.TiePushesLine {
			credit = credit.Add(g.bets[BaccaratPlayer]).Add(g.bets[BaccaratBanker])
		}
	}

	if credit.IsPositive() {
		if _, err := g.ledger.ApplyDelta(credit); err != nil {
			slog.Error("Error crediting payout", "game", g.Name(), "err", err)
		}
	}
	g.payout = credit
	g.phase = PhaseFinished
	if credit.IsPositive() {
		g.message = fmt.Sprintf("%s wins! You won $%s. Final scores: Player %d, Banker %d", g.winner, credit, playerScore, bankerScore)
	} else {
		g.message = fmt.Sprintf("No win. Final scores: Player %d, Banker %d", playerScore, bankerScore)
	}
	recordRound(g.stats, g.stake, credit)
	return nil
}

func (g *Baccarat) Reset() error {
	if g.phase != PhaseFinished && g.phase != PhaseBetting {
		return fmt.Errorf("reset: %w", ErrInvalidPhase)
	}
	g.phase = PhaseBetting
	g.deck = nil
	g.player = nil
	g.banker = nil
	g.bets = make(map[BaccaratBet]decimal.Decimal)
	g.stake = decimal.Zero
	g.payout = decimal.Zero
	g.winner = ""
	g.message = "Place your bets!"
	return nil
}
