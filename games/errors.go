package games

import "errors"

// All four error kinds are local and recoverable: an operation that returns one
// of them has left the round state, bets and ledger untouched. ErrEmptyDeck is
// the exception in spirit — per-game draw counts never exceed 52, so seeing it
// means a broken invariant, not user error.
var (
	ErrInvalidPhase      = errors.New("operation not valid in current phase")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrEmptyDeck         = errors.New("deck is empty")
	ErrInvalidBet        = errors.New("invalid bet")
)
