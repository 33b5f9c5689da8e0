package games

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
)

type CrapsBet string

const (
	CrapsPass     CrapsBet = "pass"
	CrapsDontPass CrapsBet = "dontPass"
	CrapsCome     CrapsBet = "come"
	CrapsDontCome CrapsBet = "dontCome"
	CrapsField    CrapsBet = "field"
	CrapsAny7     CrapsBet = "any7"
	CrapsAny11    CrapsBet = "any11"
	CrapsAny12    CrapsBet = "any12"
)

// CrapsPayouts are multipliers applied to the winning bet's stake on credit.
// Field pays FieldHigh on 2 and 12. Line is pass/don't-pass; LinePush returns
// the stake on the come-out 12 for don't-pass.
type CrapsPayouts struct {
	Line      decimal.Decimal `json:"line"`
	LinePush  decimal.Decimal `json:"line_push"`
	Field     decimal.Decimal `json:"field"`
	FieldHigh decimal.Decimal `json:"field_high"`
	Any7      decimal.Decimal `json:"any7"`
	Any11     decimal.Decimal `json:"any11"`
	Any12     decimal.Decimal `json:"any12"`
}

func DefaultCrapsPayouts() CrapsPayouts {
	return CrapsPayouts{
		Line:      decimal.New(2, 0),
		LinePush:  decimal.New(1, 0),
		Field:     decimal.New(2, 0),
		FieldHigh: decimal.New(3, 0),
		Any7:      decimal.New(5, 0),
		Any11:     decimal.New(16, 0),
		Any12:     decimal.New(31, 0),
	}
}

var fieldNumbers = map[int]bool{2: true, 3: true, 4: true, 9: true, 10: true, 11: true, 12: true}

// Craps resolves line bets over a come-out roll and an optional point phase;
// one-roll side bets pay on every roll of the round.
type Craps struct {
	rng     RNG
	ledger  Ledger
	stats   StatsRecorder
	payouts CrapsPayouts

	phase   Phase
	bets    map[CrapsBet]decimal.Decimal
	dice    [2]int
	point   int
	comeOut bool
	stake   decimal.Decimal
	payout  decimal.Decimal
	message string
}

type CrapsSnapshot struct {
	Phase   Phase                        `json:"phase"`
	Bets    map[CrapsBet]decimal.Decimal `json:"bets"`
	Dice    [2]int                       `json:"dice"`
	Total   int                          `json:"total"`
	Point   int                          `json:"point,omitempty"`
	ComeOut bool                         `json:"come_out"`
	Stake   decimal.Decimal              `json:"stake"`
	Payout  decimal.Decimal              `json:"payout"`
	Message string                       `json:"message"`
}

func NewCraps(rng RNG, ledger Ledger, stats StatsRecorder) *Craps {
	return &Craps{
		rng:     rng,
		ledger:  ledger,
		stats:   stats,
		payouts: DefaultCrapsPayouts(),
		phase:   PhaseBetting,
		bets:    make(map[CrapsBet]decimal.Decimal),
		comeOut: true,
		message: "Place your bets!",
	}
}

func (g *Craps) Name() string            { return GameCraps }
func (g *Craps) Phase() Phase            { return g.phase }
func (g *Craps) Message() string         { return g.message }
func (g *Craps) Stake() decimal.Decimal  { return g.totalBet() }
func (g *Craps) Payout() decimal.Decimal { return g.payout }

func (g *Craps) Snapshot() any {
	bets := make(map[CrapsBet]decimal.Decimal, len(g.bets))
	for category, amount := range g.bets {
		bets[category] = amount
	}
	return CrapsSnapshot{
		Phase:   g.phase,
		Bets:    bets,
		Dice:    g.dice,
		Total:   g.dice[0] + g.dice[1],
		Point:   g.point,
		ComeOut: g.comeOut,
		Stake:   g.stake,
		Payout:  g.payout,
		Message: g.message,
	}
}

func (g *Craps) totalBet() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range g.bets {
		total = total.Add(amount)
	}
	return total
}

// PlaceBet adds to one of the resolvable categories. Come and don't-come are
// rejected outright: with all bets frozen before the first roll they would
// just duplicate the pass line.
func (g *Craps) PlaceBet(category CrapsBet, amount decimal.Decimal) error {
	if g.phase != PhaseBetting {
		return fmt.Errorf("place bet: %w", ErrInvalidPhase)
	}
	switch category {
	case CrapsPass, CrapsDontPass, CrapsField, CrapsAny7, CrapsAny11, CrapsAny12:
	case CrapsCome, CrapsDontCome:
		return fmt.Errorf("place bet: %w: %s bets are not supported", ErrInvalidBet, category)
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

// Roll throws the dice once. The first roll debits the full stake and starts
// the round; later rolls continue the point phase. Side bets resolve and pay
// on every roll, so a long round can credit several times before it ends.
func (g *Craps) Roll() error {
	switch g.phase {
	case PhaseBetting:
		total := g.totalBet()
		if !total.IsPositive() {
			return fmt.Errorf("roll: %w: no bets placed", ErrInvalidBet)
		}
		if _, err := g.ledger.ApplyDelta(total.Neg()); err != nil {
			return fmt.Errorf("roll: %w", err)
		}
		g.stake = total
		g.phase = PhaseRolling
		g.comeOut = true
		g.point = 0
	case PhaseRolling:
	default:
		return fmt.Errorf("roll: %w", ErrInvalidPhase)
	}

	g.dice[0] = g.rng.Intn(6) + 1
	g.dice[1] = g.rng.Intn(6) + 1
	total := g.dice[0] + g.dice[1]

	var parts []string
	credit := g.resolveSideBets(total, &parts)

	if g.comeOut {
		switch {
		case total == 7 || total == 11:
			credit = credit.Add(g.winLine(CrapsPass, g.payouts.Line, &parts, "Pass line wins!"))
			if g.bets[CrapsDontPass].IsPositive() {
				parts = append(parts, "Don't pass loses.")
			}
			g.finishRoll(total, credit, parts)
			return nil
		case total == 2 || total == 3 || total == 12:
			if g.bets[CrapsPass].IsPositive() {
				parts = append(parts, "Pass line loses.")
			}
			if total == 12 {
				credit = credit.Add(g.winLine(CrapsDontPass, g.payouts.LinePush, &parts, "Don't pass pushes on 12."))
			} else {
				credit = credit.Add(g.winLine(CrapsDontPass, g.payouts.Line, &parts, "Don't pass wins!"))
			}
			g.finishRoll(total, credit, parts)
			return nil
		default:
			g.point = total
			g.comeOut = false
			parts = append(parts, fmt.Sprintf("Point is %d! Roll again.", total))
			g.continueRoll(credit, parts)
			return nil
		}
	}

	switch total {
	case g.point:
		credit = credit.Add(g.winLine(CrapsPass, g.payouts.Line, &parts, "Point made! Pass line wins!"))
		if g.bets[CrapsDontPass].IsPositive() {
			parts = append(parts, "Don't pass loses.")
		}
		g.finishRoll(total, credit, parts)
	case 7:
		if g.bets[CrapsPass].IsPositive() {
			parts = append(parts, "Seven out! Pass line loses.")
		}
		credit = credit.Add(g.winLine(CrapsDontPass, g.payouts.Line, &parts, "Don't pass wins!"))
		g.finishRoll(total, credit, parts)
	default:
		parts = append(parts, fmt.Sprintf("Roll: %d. Still need %d.", total, g.point))
		g.continueRoll(credit, parts)
	}
	return nil
}

func (g *Craps) resolveSideBets(total int, parts *[]string) decimal.Decimal {
	credit := decimal.Zero
	if g.bets[CrapsField].IsPositive() && fieldNumbers[total] {
		multiplier := g.payouts.Field
		if total == 2 || total == 12 {
			multiplier = g.payouts.FieldHigh
		}
		won := g.bets[CrapsField].Mul(multiplier)
		credit = credit.Add(won)
		*parts = append(*parts, fmt.Sprintf("Field wins! +$%s", won))
	}
	if g.bets[CrapsAny7].IsPositive() && total == 7 {
		won := g.bets[CrapsAny7].Mul(g.payouts.Any7)
		credit = credit.Add(won)
		*parts = append(*parts, fmt.Sprintf("Any 7 wins! +$%s", won))
	}
	if g.bets[CrapsAny11].IsPositive() && total == 11 {
		won := g.bets[CrapsAny11].Mul(g.payouts.Any11)
		credit = credit.Add(won)
		*parts = append(*parts, fmt.Sprintf("Any 11 wins! +$%s", won))
	}
	if g.bets[CrapsAny12].IsPositive() && total == 12 {
		won := g.bets[CrapsAny12].Mul(g.payouts.Any12)
		credit = credit.Add(won)
		*parts = append(*parts, fmt.Sprintf("Any 12 wins! +$%s", won))
	}
	return credit
}

func (g *Craps) winLine(category CrapsBet, multiplier decimal.Decimal, parts *[]string, message string) decimal.Decimal {
	if !g.bets[category].IsPositive() {
		return decimal.Zero
	}
	won := g.bets[category].Mul(multiplier)
	*parts = append(*parts, fmt.Sprintf("%s +$%s", message, won))
	return won
}

// continueRoll credits this roll's side-bet wins and leaves the round rolling.
func (g *Craps) continueRoll(credit decimal.Decimal, parts []string) {
	g.creditRoll(credit)
	g.message = strings.Join(append(parts, fmt.Sprintf("Roll: %d (%d, %d)", g.dice[0]+g.dice[1], g.dice[0], g.dice[1])), " ")
}

func (g *Craps) finishRoll(total int, credit decimal.Decimal, parts []string) {
	g.creditRoll(credit)
	g.phase = PhaseFinished
	g.message = strings.Join(append(parts, fmt.Sprintf("Roll: %d (%d, %d)", total, g.dice[0], g.dice[1])), " ")
	recordRound(g.stats, g.stake, g.payout)
}

func (g *Craps) creditRoll(credit decimal.Decimal) {
	if !credit.IsPositive() {
		return
	}
	if _, err := g.ledger.ApplyDelta(credit); err != nil {
		slog.Error("Error crediting payout", "game", g.Name(), "err", err)
	}
	g.payout = g.payout.Add(credit)
}

func (g *Craps) Reset() error {
	if g.phase != PhaseFinished && g.phase != PhaseBetting {
		return fmt.Errorf("reset: %w", ErrInvalidPhase)
	}
	g.phase = PhaseBetting
	g.bets = make(map[CrapsBet]decimal.Decimal)
	g.dice = [2]int{}
	g.point = 0
	g.comeOut = true
	g.stake = decimal.Zero
	g.payout = decimal.Zero
	g.message = "Place your bets!"
	return nil
}
