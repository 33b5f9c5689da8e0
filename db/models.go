package db

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID               uint      `gorm:"primaryKey"`
	RegistrationTime time.Time `gorm:"autoCreateTime"`
	Login            string    `gorm:"unique;not null"`
	Username         string    `gorm:"not null"`
	Password         string    `gorm:"size:128;not null"`
}

type RefreshToken struct {
	Token        string    `gorm:"primaryKey"`
	UserID       uint      `gorm:"not null;"`
	User         User      `gorm:"not null;constraint:OnDelete:CASCADE"`
	CreationDate time.Time `gorm:"autoCreateTime"`
}

// Balance is the single spendable amount per user. Every debit and credit
// goes through DB.ApplyBalanceDelta.
type Balance struct {
	UserID uint            `gorm:"primaryKey" json:"user_id"`
	User   User            `gorm:"not null;constraint:OnDelete:CASCADE" json:"-"`
	Amount decimal.Decimal `gorm:"type:numeric(1000,4);default:0" json:"amount"`
}

type UserSeed struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;" json:"user_id"`
	User      User      `gorm:"not null;constraint:OnDelete:CASCADE" json:"-"`
	UserSeed  string    `gorm:"size:64;not null" json:"seed"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type ServerSeed struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;" json:"user_id"`
	User       User      `gorm:"not null;constraint:OnDelete:CASCADE" json:"-"`
	ServerSeed string    `gorm:"size:64;not null" json:"seed"`
	Revealed   bool      `gorm:"not null" json:"revealed"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Round is one finished game round: the full stake, the credited payout and a
// JSON snapshot of the final table state.
type Round struct {
	ID        uint            `gorm:"primaryKey"`
	Timestamp time.Time       `gorm:"autoCreateTime"`
	Game      string          `gorm:"size:32;not null"`
	Stake     decimal.Decimal `gorm:"type:numeric(1000,4)"`
	Payout    decimal.Decimal `gorm:"type:numeric(1000,4)"`
	Detail    string          `gorm:"not null"`
	UUID      string          `gorm:"not null"`

	UserID       uint       `gorm:"not null;"`
	User         User       `gorm:"not null;constraint:OnDelete:CASCADE"`
	UserSeedID   uint       `gorm:"not null;"`
	UserSeed     UserSeed   `gorm:"not null;constraint:OnDelete:CASCADE"`
	ServerSeedID uint       `gorm:"not null;"`
	ServerSeed   ServerSeed `gorm:"not null;constraint:OnDelete:CASCADE"`
}

// UserStats counts decided rounds only; pushes change none of the columns.
type UserStats struct {
	UserID      uint `gorm:"primaryKey" json:"user_id"`
	User        User `gorm:"not null;constraint:OnDelete:CASCADE" json:"-"`
	GamesPlayed int  `gorm:"default:0" json:"games_played"`
	TotalWins   int  `gorm:"default:0" json:"total_wins"`
	TotalLosses int  `gorm:"default:0" json:"total_losses"`
}
