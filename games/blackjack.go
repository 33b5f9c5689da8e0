package games

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
)

// dealer hits on every total below 17, soft or hard
const dealerStandTotal = 17

// BlackjackPayouts are multipliers applied to the stake when crediting.
type BlackjackPayouts struct {
	Natural decimal.Decimal `json:"natural"`
	Win     decimal.Decimal `json:"win"`
	Push    decimal.Decimal `json:"push"`
}

func DefaultBlackjackPayouts() BlackjackPayouts {
	natural, _ := decimal.NewFromString("2.5")
	return BlackjackPayouts{
		Natural: natural,
		Win:     decimal.New(2, 0),
		Push:    decimal.New(1, 0),
	}
}

type Blackjack struct {
	rng     RNG
	ledger  Ledger
	stats   StatsRecorder
	payouts BlackjackPayouts

	phase   Phase
	deck    *Deck
	player  Hand
	dealer  Hand
	bet     decimal.Decimal
	payout  decimal.Decimal
	message string
}

type BlackjackSnapshot struct {
	Phase       Phase           `json:"phase"`
	PlayerHand  Hand            `json:"player_hand"`
	DealerHand  Hand            `json:"dealer_hand"`
	PlayerTotal int             `json:"player_total"`
	DealerTotal int             `json:"dealer_total"`
	Bet         decimal.Decimal `json:"bet"`
	Payout      decimal.Decimal `json:"payout"`
	Message     string          `json:"message"`
}

func NewBlackjack(rng RNG, ledger Ledger, stats StatsRecorder) *Blackjack {
	return &Blackjack{
		rng:     rng,
		ledger:  ledger,
		stats:   stats,
		payouts: DefaultBlackjackPayouts(),
		phase:   PhaseBetting,
		message: "Place your bet!",
	}
}

func (g *Blackjack) Name() string            { return GameBlackjack }
func (g *Blackjack) Phase() Phase            { return g.phase }
func (g *Blackjack) Message() string         { return g.message }
func (g *Blackjack) Stake() decimal.Decimal  { return g.bet }
func (g *Blackjack) Payout() decimal.Decimal { return g.payout }

func (g *Blackjack) Snapshot() any {
	return BlackjackSnapshot{
		Phase:       g.phase,
		PlayerHand:  append(Hand{}, g.player...),
		DealerHand:  append(Hand{}, g.dealer...),
		PlayerTotal: BlackjackTotal(g.player),
		DealerTotal: BlackjackTotal(g.dealer),
		Bet:         g.bet,
		Payout:      g.payout,
		Message:     g.message,
	}
}

func (g *Blackjack) PlaceBet(amount decimal.Decimal) error {
	if g.phase != PhaseBetting {
		return fmt.Errorf("place bet: %w", ErrInvalidPhase)
	}
	if err := checkStake(g.ledger, decimal.Zero, amount); err != nil {
		return fmt.Errorf("place bet: %w", err)
	}
	g.bet = amount
	g.message = fmt.Sprintf("Bet placed: $%s", amount)
	return nil
}

// Deal debits the stake and opens the round with two cards each from a fresh
// shuffled deck.
func (g *Blackjack) Deal() error {
	if g.phase != PhaseBetting {
		return fmt.Errorf("deal: %w", ErrInvalidPhase)
	}
	if !g.bet.IsPositive() {
		return fmt.Errorf("deal: %w: no bet placed", ErrInvalidBet)
	}
	if _, err := g.ledger.ApplyDelta(g.bet.Neg()); err != nil {
		return fmt.Errorf("deal: %w", err)
	}

	g.deck = NewShuffledDeck(g.rng)
	g.player = nil
	g.dealer = nil
	for range 2 {
		if err := draw(g.deck, &g.player); err != nil {
			return err
		}
	}
	for range 2 {
		if err := draw(g.deck, &g.dealer); err != nil {
			return err
		}
	}
	g.phase = PhasePlaying
	g.message = "Hit or Stand?"
	return nil
}

func (g *Blackjack) Hit() error {
	if g.phase != PhasePlaying {
		return fmt.Errorf("hit: %w", ErrInvalidPhase)
	}
	if err := draw(g.deck, &g.player); err != nil {
		return err
	}

	switch total := BlackjackTotal(g.player); {
	case total > 21:
		g.settle(decimal.Zero, "Bust! You lose!")
	case total == 21:
		g.settle(g.bet.Mul(g.payouts.Natural), "Blackjack! You win!")
	default:
		g.message = "Hit or Stand?"
	}
	return nil
}

// Stand runs the dealer to completion and settles the round.
func (g *Blackjack) Stand() error {
	if g.phase != PhasePlaying {
		return fmt.Errorf("stand: %w", ErrInvalidPhase)
	}
	g.phase = PhaseDealer
	g.message = "Dealer playing..."

	for BlackjackTotal(g.dealer) < dealerStandTotal {
		if err := draw(g.deck, &g.dealer); err != nil {
			return err
		}
	}

	playerTotal := BlackjackTotal(g.player)
	dealerTotal := BlackjackTotal(g.dealer)
	switch {
	case dealerTotal > 21:
		g.settle(g.bet.Mul(g.payouts.Win), "Dealer busts! You win!")
	case dealerTotal > playerTotal:
		g.settle(decimal.Zero, "Dealer wins!")
	case dealerTotal < playerTotal:
		g.settle(g.bet.Mul(g.payouts.Win), "You win!")
	default:
		g.settle(g.bet.Mul(g.payouts.Push), "Push! It's a tie!")
	}
	return nil
}

func (g *Blackjack) Reset() error {
	if g.phase != PhaseFinished && g.phase != PhaseBetting {
		return fmt.Errorf("reset: %w", ErrInvalidPhase)
	}
	g.phase = PhaseBetting
	g.deck = nil
	g.player = nil
	g.dealer = nil
	g.bet = decimal.Zero
	g.payout = decimal.Zero
	g.message = "Place your bet!"
	return nil
}

func (g *Blackjack) settle(credit decimal.Decimal, message string) {
	if credit.IsPositive() {
		if _, err := g.ledger.ApplyDelta(credit); err != nil {
			slog.Error("Error crediting payout", "game", g.Name(), "err", err)
		}
	}
	g.payout = credit
	g.phase = PhaseFinished
	g.message = message
	recordRound(g.stats, g.bet, credit)
}
