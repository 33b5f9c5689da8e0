package responses

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	Ok  = "OK"
	Err = "ERR"
)

type JsonResponse[T any] struct {
	Status Status `json:"status"`
	Data   T      `json:"data"`
}

type ErrorMessage struct {
	Message string `json:"message"`
}

// OK responses

type Ping struct {
	Pong string `json:"pong"`
}

type Credentials struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    uint64 `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

type User struct {
	ID               uint      `json:"id"`
	RegistrationTime time.Time `json:"registration_time"`
	Username         string    `json:"username"`
}

type Balance struct {
	UserID uint            `json:"user_id"`
	Amount decimal.Decimal `json:"amount"`
}

type UserStats struct {
	UserID      uint `json:"user_id"`
	GamesPlayed int  `json:"games_played"`
	TotalWins   int  `json:"total_wins"`
	TotalLosses int  `json:"total_losses"`
}

type WSresponse struct {
	Id   uint        `json:"id"`
	Data interface{} `json:"data"`
}

// GameUpdate is pushed to the acting player after every accepted table
// operation; Snapshot is the game's own view of the table.
type GameUpdate struct {
	Game     string          `json:"game"`
	Phase    string          `json:"phase"`
	Message  string          `json:"message"`
	Stake    decimal.Decimal `json:"stake"`
	Payout   decimal.Decimal `json:"payout"`
	Balance  decimal.Decimal `json:"balance"`
	Snapshot interface{}     `json:"snapshot"`
}

type GameError struct {
	Game    string `json:"game"`
	Op      string `json:"op"`
	Message string `json:"message"`
}

type Round struct {
	ID           uint            `json:"id"`
	Timestamp    time.Time       `json:"timestamp"`
	Game         string          `json:"game"`
	Stake        decimal.Decimal `json:"stake"`
	Payout       decimal.Decimal `json:"payout"`
	Detail       string          `json:"detail"`
	UUID         string          `json:"uuid"`
	UserID       uint            `json:"user_id"`
	Username     string          `json:"username"`
	UserSeedID   uint            `json:"user_seed_id"`
	ServerSeedID uint            `json:"server_seed_id"`
}

type Leaderboard struct {
	UserId   uint            `gorm:"user_id" json:"user_id"`
	Total    decimal.Decimal `gorm:"total" json:"total"`
	Username string          `gorm:"username" json:"username"`
}
