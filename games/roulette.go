package games

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
)

type RouletteBet string

const (
	RouletteRed      RouletteBet = "red"
	RouletteBlack    RouletteBet = "black"
	RouletteEven     RouletteBet = "even"
	RouletteOdd      RouletteBet = "odd"
	RouletteLow      RouletteBet = "low"
	RouletteHigh     RouletteBet = "high"
	RouletteDozen1   RouletteBet = "dozen1"
	RouletteDozen2   RouletteBet = "dozen2"
	RouletteDozen3   RouletteBet = "dozen3"
	RouletteColumn1  RouletteBet = "column1"
	RouletteColumn2  RouletteBet = "column2"
	RouletteColumn3  RouletteBet = "column3"
	RouletteStraight RouletteBet = "straight"
)

// rouletteProfit maps a category to its profit multiplier. Credit on a win is
// stake*(profit+1), the stake coming back with the winnings.
var rouletteProfit = map[RouletteBet]decimal.Decimal{
	RouletteRed:     decimal.New(1, 0),
	RouletteBlack:   decimal.New(1, 0),
	RouletteEven:    decimal.New(1, 0),
	RouletteOdd:     decimal.New(1, 0),
	RouletteLow:     decimal.New(1, 0),
	RouletteHigh:    decimal.New(1, 0),
	RouletteDozen1:  decimal.New(2, 0),
	RouletteDozen2:  decimal.New(2, 0),
	RouletteDozen3:  decimal.New(2, 0),
	RouletteColumn1: decimal.New(2, 0),
	RouletteColumn2: decimal.New(2, 0),
	RouletteColumn3: decimal.New(2, 0),
}

// rouletteCategories fixes the settlement order used in messages.
var rouletteCategories = []RouletteBet{
	RouletteRed, RouletteBlack, RouletteEven, RouletteOdd,
	RouletteLow, RouletteHigh,
	RouletteDozen1, RouletteDozen2, RouletteDozen3,
	RouletteColumn1, RouletteColumn2, RouletteColumn3,
}

var rouletteReds = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

func rouletteWins(category RouletteBet, number int) bool {
	if number == 0 {
		return false
	}
	switch category {
	case RouletteRed:
		return rouletteReds[number]
	case RouletteBlack:
		return !rouletteReds[number]
	case RouletteEven:
		return number%2 == 0
	case RouletteOdd:
		return number%2 == 1
	case RouletteLow:
		return number <= 18
	case RouletteHigh:
		return number >= 19
	case RouletteDozen1:
		return number <= 12
	case RouletteDozen2:
		return number >= 13 && number <= 24
	case RouletteDozen3:
		return number >= 25
	case RouletteColumn1:
		return number%3 == 1
	case RouletteColumn2:
		return number%3 == 2
	case RouletteColumn3:
		return number%3 == 0
	}
	return false
}

// Roulette is a European single-zero wheel taking outside bets only.
type Roulette struct {
	rng    RNG
	ledger Ledger
	stats  StatsRecorder

	phase   Phase
	bets    map[RouletteBet]decimal.Decimal
	number  int
	stake   decimal.Decimal
	payout  decimal.Decimal
	message string
}

type RouletteSnapshot struct {
	Phase   Phase                           `json:"phase"`
	Bets    map[RouletteBet]decimal.Decimal `json:"bets"`
	Number  int                             `json:"number"`
	Color   string                          `json:"color"`
	Stake   decimal.Decimal                 `json:"stake"`
	Payout  decimal.Decimal                 `json:"payout"`
	Message string                          `json:"message"`
}

func NewRoulette(rng RNG, ledger Ledger, stats StatsRecorder) *Roulette {
	return &Roulette{
		rng:     rng,
		ledger:  ledger,
		stats:   stats,
		phase:   PhaseBetting,
		bets:    make(map[RouletteBet]decimal.Decimal),
		message: "Place your bets!",
	}
}

func (g *Roulette) Name() string            { return GameRoulette }
func (g *Roulette) Phase() Phase            { return g.phase }
func (g *Roulette) Message() string         { return g.message }
func (g *Roulette) Stake() decimal.Decimal  { return g.totalBet() }
func (g *Roulette) Payout() decimal.Decimal { return g.payout }

func rouletteColor(number int) string {
	switch {
	case number == 0:
		return "green"
	case rouletteReds[number]:
		return "red"
	default:
		return "black"
	}
}

func (g *Roulette) Snapshot() any {
	bets := make(map[RouletteBet]decimal.Decimal, len(g.bets))
	for category, amount := range g.bets {
		bets[category] = amount
	}
	return RouletteSnapshot{
		Phase:   g.phase,
		Bets:    bets,
		Number:  g.number,
		Color:   rouletteColor(g.number),
		Stake:   g.stake,
		Payout:  g.payout,
		Message: g.message,
	}
}

func (g *Roulette) totalBet() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range g.bets {
		total = total.Add(amount)
	}
	return total
}

// PlaceBet adds to an outside-bet category. Straight (single number) bets are
// rejected: the betting surface carries no number, only categories.
func (g *Roulette) PlaceBet(category RouletteBet, amount decimal.Decimal) error {
	if g.phase != PhaseBetting {
		return fmt.Errorf("place bet: %w", ErrInvalidPhase)
	}
	if category == RouletteStraight {
		return fmt.Errorf("place bet: %w: straight bets are not supported", ErrInvalidBet)
	}
	if _, ok := rouletteProfit[category]; !ok {
		return fmt.Errorf("place bet: %w: unknown category %q", ErrInvalidBet, category)
	}
	if err := checkStake(g.ledger, g.totalBet(), amount); err != nil {
		return fmt.Errorf("place bet: %w", err)
	}
	g.bets[category] = g.bets[category].Add(amount)
	g.message = fmt.Sprintf("Bet placed: %s - $%s", category, amount)
	return nil
}

// Spin debits the full stake, draws a pocket and settles every category in
// one step.
func (g *Roulette) Spin() error {
	if g.phase != PhaseBetting {
		return fmt.Errorf("spin: %w", ErrInvalidPhase)
	}
	total := g.totalBet()
	if !total.IsPositive() {
		return fmt.Errorf("spin: %w: no bets placed", ErrInvalidBet)
	}
	if _, err := g.ledger.ApplyDelta(total.Neg()); err != nil {
		return fmt.Errorf("spin: %w", err)
	}
	g.stake = total
	g.phase = PhaseSpinning

	g.number = g.rng.Intn(37)

	credit := decimal.Zero
	var parts []string
	for _, category := range rouletteCategories {
		amount, ok := g.bets[category]
		if !ok || !rouletteWins(category, g.number) {
			continue
		}
		won := amount.Mul(rouletteProfit[category].Add(decimal.New(1, 0)))
		credit = credit.Add(won)
		parts = append(parts, fmt.Sprintf("%s wins! +$%s", category, won))
	}

	if credit.IsPositive() {
		if _, err := g.ledger.ApplyDelta(credit); err != nil {
			slog.Error("Error crediting payout", "game", g.Name(), "err", err)
		}
	} else {
		parts = append(parts, "No winning bets.")
	}
	g.payout = credit
	g.phase = PhaseFinished
	g.message = fmt.Sprintf("Landed on %d (%s). %s", g.number, rouletteColor(g.number), strings.Join(parts, " "))
	recordRound(g.stats, g.stake, g.payout)
	return nil
}

func (g *Roulette) Reset() error {
	if g.phase != PhaseFinished && g.phase != PhaseBetting {
		return fmt.Errorf("reset: %w", ErrInvalidPhase)
	}
	g.phase = PhaseBetting
	g.bets = make(map[RouletteBet]decimal.Decimal)
	g.number = 0
	g.stake = decimal.Zero
	g.payout = decimal.Zero
	g.message = "Place your bets!"
	return nil
}
