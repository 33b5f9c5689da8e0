package games

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
)

const (
	GameBlackjack = "blackjack"
	GamePoker     = "poker"
	GameBaccarat  = "baccarat"
	GameCraps     = "craps"
	GameRoulette  = "roulette"
	GameSlots     = "slots"
)

func Names() []string {
	return []string{GameBlackjack, GamePoker, GameBaccarat, GameCraps, GameRoulette, GameSlots}
}

// Phase is the round state of an engine. Each game accepts a fixed subset of
// operations per phase; everything else is rejected with ErrInvalidPhase.
type Phase string

const (
	PhaseBetting  Phase = "betting"
	PhasePlaying  Phase = "playing"
	PhaseDealer   Phase = "dealer"
	PhaseDealing  Phase = "dealing"
	PhaseRolling  Phase = "rolling"
	PhaseSpinning Phase = "spinning"
	PhaseFinished Phase = "finished"
)

// Ledger is the single source of truth for spendable funds. Engines debit the
// full stake when a round leaves the betting phase and credit winnings when the
// round resolves; no other balance access is allowed.
type Ledger interface {
	Balance() (decimal.Decimal, error)
	ApplyDelta(delta decimal.Decimal) (decimal.Decimal, error)
}

// StatsRecorder receives one outcome per round that ends in a strict win or
// loss. Rounds that break exactly even are not recorded.
type StatsRecorder interface {
	RecordOutcome(won bool) error
}

// Stake reports everything riding on the round: pending bets before the
// round is committed, the debited total after.
type Engine interface {
	Name() string
	Phase() Phase
	Message() string
	Stake() decimal.Decimal
	Payout() decimal.Decimal
	Snapshot() any
	Reset() error
}

func checkStake(ledger Ledger, staked decimal.Decimal, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidBet)
	}
	balance, err := ledger.Balance()
	if err != nil {
		return err
	}
	if staked.Add(amount).GreaterThan(balance) {
		return fmt.Errorf("%w: stake exceeds balance", ErrInsufficientFunds)
	}
	return nil
}

func recordRound(stats StatsRecorder, staked decimal.Decimal, credited decimal.Decimal) {
	var err error
	switch {
	case credited.GreaterThan(staked):
		err = stats.RecordOutcome(true)
	case credited.LessThan(staked):
		err = stats.RecordOutcome(false)
	default:
		return
	}
	if err != nil {
		slog.Error("Error recording outcome", "err", err)
	}
}
