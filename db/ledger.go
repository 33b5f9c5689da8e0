package db

import (
	"github.com/shopspring/decimal"
)

// UserLedger binds one user's balance row to the engines' funds interface.
type UserLedger struct {
	DB     *DB
	UserID uint
}

func (l *UserLedger) Balance() (decimal.Decimal, error) {
	return l.DB.GetBalance(l.UserID)
}

func (l *UserLedger) ApplyDelta(delta decimal.Decimal) (decimal.Decimal, error) {
	return l.DB.ApplyBalanceDelta(l.UserID, delta)
}

// UserStatsRecorder feeds decided round outcomes into the stats counters.
type UserStatsRecorder struct {
	DB     *DB
	UserID uint
}

func (r *UserStatsRecorder) RecordOutcome(won bool) error {
	return r.DB.BumpUserStats(r.UserID, won)
}
