package games

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
)

const pokerHandSize = 5

// PokerPayouts are multipliers applied to the stake when crediting.
type PokerPayouts struct {
	Win  decimal.Decimal `json:"win"`
	Push decimal.Decimal `json:"push"`
}

func DefaultPokerPayouts() PokerPayouts {
	return PokerPayouts{
		Win:  decimal.New(2, 0),
		Push: decimal.New(1, 0),
	}
}

// Poker is 5-card draw against a fixed dealer hand: one shared deck, one
// discard-and-draw, winner by hand category only.
type Poker struct {
	rng     RNG
	ledger  Ledger
	stats   StatsRecorder
	payouts PokerPayouts

	phase      Phase
	deck       *Deck
	player     Hand
	dealer     Hand
	discard    [pokerHandSize]bool
	playerRank HandRank
	dealerRank HandRank
	bet        decimal.Decimal
	payout     decimal.Decimal
	message    string
}

type PokerSnapshot struct {
	Phase      Phase           `json:"phase"`
	PlayerHand Hand            `json:"player_hand"`
	DealerHand Hand            `json:"dealer_hand"`
	Discard    []bool          `json:"discard"`
	PlayerRank string          `json:"player_rank,omitempty"`
	DealerRank string          `json:"dealer_rank,omitempty"`
	Bet        decimal.Decimal `json:"bet"`
	Payout     decimal.Decimal `json:"payout"`
	Message    string          `json:"message"`
}

func NewPoker(rng RNG, ledger Ledger, stats StatsRecorder) *Poker {
	return &Poker{
		rng:     rng,
		ledger:  ledger,
		stats:   stats,
		payouts: DefaultPokerPayouts(),
		phase:   PhaseBetting,
		message: "Place your bet!",
	}
}

func (g *Poker) Name() string            { return GamePoker }
func (g *Poker) Phase() Phase            { return g.phase }
func (g *Poker) Message() string         { return g.message }
func (g *Poker) Stake() decimal.Decimal  { return g.bet }
func (g *Poker) Payout() decimal.Decimal { return g.payout }

func (g *Poker) Snapshot() any {
	snapshot := PokerSnapshot{
		Phase:      g.phase,
		PlayerHand: append(Hand{}, g.player...),
		DealerHand: append(Hand{}, g.dealer...),
		Discard:    append([]bool{}, g.discard[:]...),
		Bet:        g.bet,
		Payout:     g.payout,
		Message:    g.message,
	}
	if g.phase == PhaseFinished {
		snapshot.PlayerRank = g.playerRank.String()
		snapshot.DealerRank = g.dealerRank.String()
	}
	return snapshot
}

func (g *Poker) PlaceBet(amount decimal.Decimal) error {
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

// Deal debits the stake and deals five cards each to player and dealer from
// one shared shuffled deck.
func (g *Poker) Deal() error {
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
	g.discard = [pokerHandSize]bool{}
	for range pokerHandSize {
		if err := draw(g.deck, &g.player); err != nil {
			return err
		}
	}
	for range pokerHandSize {
		if err := draw(g.deck, &g.dealer); err != nil {
			return err
		}
	}
	g.phase = PhasePlaying
	g.message = "Select cards to discard, then draw new ones!"
	return nil
}

// ToggleDiscard flips whether the card at the given position will be replaced
// on the next draw.
func (g *Poker) ToggleDiscard(index int) error {
	if g.phase != PhasePlaying {
		return fmt.Errorf("toggle discard: %w", ErrInvalidPhase)
	}
	if index < 0 || index >= pokerHandSize {
		return fmt.Errorf("toggle discard: %w: no card at position %d", ErrInvalidBet, index)
	}
	g.discard[index] = !g.discard[index]
	return nil
}

// Draw replaces every discarded card from the remaining deck, then evaluates
// both hands and settles the round.
func (g *Poker) Draw() error {
	if g.phase != PhasePlaying {
		return fmt.Errorf("draw: %w", ErrInvalidPhase)
	}
	selected := false
	for _, marked := range g.discard {
		if marked {
			selected = true
			break
		}
	}
	if !selected {
		return fmt.Errorf("draw: %w: no cards selected to discard", ErrInvalidBet)
	}

	for i, marked := range g.discard {
		if !marked {
			continue
		}
		card, err := g.deck.Deal()
		if err != nil {
			return err
		}
		g.player[i] = card
	}

	g.playerRank = PokerRank(g.player)
	g.dealerRank = PokerRank(g.dealer)

	switch {
	case g.playerRank > g.dealerRank:
		g.settle(g.bet.Mul(g.payouts.Win), fmt.Sprintf("You win! %s beats %s", g.playerRank, g.dealerRank))
	case g.playerRank < g.dealerRank:
		g.settle(decimal.Zero, fmt.Sprintf("Dealer wins! %s beats %s", g.dealerRank, g.playerRank))
	default:
		g.settle(g.bet.Mul(g.payouts.Push), fmt.Sprintf("Push! Both have %s", g.playerRank))
	}
	return nil
}

func (g *Poker) Reset() error {
	if g.phase != PhaseFinished && g.phase != PhaseBetting {
		return fmt.Errorf("reset: %w", ErrInvalidPhase)
	}
	g.phase = PhaseBetting
	g.deck = nil
	g.player = nil
	g.dealer = nil
	g.discard = [pokerHandSize]bool{}
	g.playerRank = HighCard
	g.dealerRank = HighCard
	g.bet = decimal.Zero
	g.payout = decimal.Zero
	g.message = "Place your bet!"
	return nil
}

func (g *Poker) settle(credit decimal.Decimal, message string) {
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
