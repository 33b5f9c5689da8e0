package games

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
)

type SlotSymbol int

const (
	SlotCherry SlotSymbol = iota
	SlotLemon
	SlotOrange
	SlotPlum
	SlotBell
	SlotBar
	SlotSeven
	SlotDiamond
	SlotStar

	slotSymbolCount = 9
)

var slotNames = [slotSymbolCount]string{
	"Cherry", "Lemon", "Orange", "Plum", "Bell", "Bar", "Seven", "Diamond", "Star",
}

var slotValues = [slotSymbolCount]int64{1, 2, 3, 4, 5, 6, 10, 20, 50}

func (s SlotSymbol) String() string {
	if s < 0 || s >= slotSymbolCount {
		return "Unknown"
	}
	return slotNames[s]
}

// Value is the base multiplier a symbol carries on a paying line.
func (s SlotSymbol) Value() decimal.Decimal {
	if s < 0 || s >= slotSymbolCount {
		return decimal.Zero
	}
	return decimal.New(slotValues[s], 0)
}

const slotLineMultiplier = 10

// slotLines are the eight paylines on the 3x3 grid: rows, columns and the two
// diagonals, as [row][col] coordinates.
var slotLines = [8][3][2]int{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// SlotMachine spins a 3x3 grid. Matched paylines pay value*bet*10 each and
// three or more of a symbol anywhere pays a scatter of value*bet*count, all
// wins additive.
type SlotMachine struct {
	rng    RNG
	ledger Ledger
	stats  StatsRecorder

	phase   Phase
	grid    [3][3]SlotSymbol
	bet     decimal.Decimal
	stake   decimal.Decimal
	payout  decimal.Decimal
	message string
}

type SlotSnapshot struct {
	Phase   Phase           `json:"phase"`
	Grid    [3][3]string    `json:"grid"`
	Bet     decimal.Decimal `json:"bet"`
	Stake   decimal.Decimal `json:"stake"`
	Payout  decimal.Decimal `json:"payout"`
	Message string          `json:"message"`
}

func NewSlotMachine(rng RNG, ledger Ledger, stats StatsRecorder) *SlotMachine {
	return &SlotMachine{
		rng:     rng,
		ledger:  ledger,
		stats:   stats,
		phase:   PhaseBetting,
		message: "Place your bet!",
	}
}

func (g *SlotMachine) Name() string            { return GameSlots }
func (g *SlotMachine) Phase() Phase            { return g.phase }
func (g *SlotMachine) Message() string         { return g.message }
func (g *SlotMachine) Stake() decimal.Decimal  { return g.bet }
func (g *SlotMachine) Payout() decimal.Decimal { return g.payout }

func (g *SlotMachine) Snapshot() any {
	var grid [3][3]string
	for row := range 3 {
		for col := range 3 {
			grid[row][col] = g.grid[row][col].String()
		}
	}
	return SlotSnapshot{
		Phase:   g.phase,
		Grid:    grid,
		Bet:     g.bet,
		Stake:   g.stake,
		Payout:  g.payout,
		Message: g.message,
	}
}

func (g *SlotMachine) PlaceBet(amount decimal.Decimal) error {
	if g.phase != PhaseBetting {
		return fmt.Errorf("place bet: %w", ErrInvalidPhase)
	}
	if err := checkStake(g.ledger, g.bet, amount); err != nil {
		return fmt.Errorf("place bet: %w", err)
	}
	g.bet = g.bet.Add(amount)
	g.message = fmt.Sprintf("Bet placed: $%s", g.bet)
	return nil
}

// Spin debits the bet, fills the grid and settles lines plus scatters.
func (g *SlotMachine) Spin() error {
	if g.phase != PhaseBetting {
		return fmt.Errorf("spin: %w", ErrInvalidPhase)
	}
	if !g.bet.IsPositive() {
		return fmt.Errorf("spin: %w: no bet placed", ErrInvalidBet)
	}
	if _, err := g.ledger.ApplyDelta(g.bet.Neg()); err != nil {
		return fmt.Errorf("spin: %w", err)
	}
	g.stake = g.bet
	g.phase = PhaseSpinning

	for row := range 3 {
		for col := range 3 {
			g.grid[row][col] = SlotSymbol(g.rng.Intn(slotSymbolCount))
		}
	}

	credit, parts := g.settleGrid()
	if credit.IsPositive() {
		if _, err := g.ledger.ApplyDelta(credit); err != nil {
			slog.Error("Error crediting payout", "game", g.Name(), "err", err)
		}
	} else {
		parts = append(parts, "No luck this time!")
	}
	g.payout = credit
	g.phase = PhaseFinished
	g.message = strings.Join(parts, " ")
	recordRound(g.stats, g.stake, g.payout)
	return nil
}

func (g *SlotMachine) settleGrid() (decimal.Decimal, []string) {
	credit := decimal.Zero
	var parts []string

	for _, line := range slotLines {
		first := g.grid[line[0][0]][line[0][1]]
		if g.grid[line[1][0]][line[1][1]] != first || g.grid[line[2][0]][line[2][1]] != first {
			continue
		}
		won := first.Value().Mul(g.bet).Mul(decimal.New(slotLineMultiplier, 0))
		credit = credit.Add(won)
		parts = append(parts, fmt.Sprintf("Line of %ss! +$%s", first, won))
	}

	var counts [slotSymbolCount]int
	for row := range 3 {
		for col := range 3 {
			counts[g.grid[row][col]]++
		}
	}
	for symbol, count := range counts {
		if count < 3 {
			continue
		}
		won := SlotSymbol(symbol).Value().Mul(g.bet).Mul(decimal.New(int64(count), 0))
		credit = credit.Add(won)
		parts = append(parts, fmt.Sprintf("%dx %s scatter! +$%s", count, SlotSymbol(symbol), won))
	}
	return credit, parts
}

func (g *SlotMachine) Reset() error {
	if g.phase != PhaseFinished && g.phase != PhaseBetting {
		return fmt.Errorf("reset: %w", ErrInvalidPhase)
	}
	g.phase = PhaseBetting
	g.grid = [3][3]SlotSymbol{}
	g.bet = decimal.Zero
	g.stake = decimal.Zero
	g.payout = decimal.Zero
	g.message = "Place your bet!"
	return nil
}
