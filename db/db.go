package db

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"luckyace.io/backend/responses"
)

var ErrInsufficientBalance = errors.New("amount is greater than balance")

type DB struct {
	*gorm.DB
}

func (db *DB) GetBalance(userId uint) (decimal.Decimal, error) {
	balance := Balance{}
	err := db.Where("user_id = ?", userId).First(&balance).Error
	if err != nil {
		return decimal.Zero, err
	}

	return balance.Amount, nil
}

// ApplyBalanceDelta moves funds atomically. A negative delta that would take
// the balance below zero fails with ErrInsufficientBalance and changes
// nothing.
func (db *DB) ApplyBalanceDelta(userId uint, delta decimal.Decimal) (decimal.Decimal, error) {
	updated := decimal.Zero
	err := db.Transaction(func(tx *gorm.DB) error {

		balance := Balance{}
		err := tx.Where("user_id = ?", userId).First(&balance).Error
		if err != nil {
			return err
		}

		updated = balance.Amount.Add(delta)
		if updated.IsNegative() {
			return ErrInsufficientBalance
		}

		if err := tx.Model(&Balance{}).Where("user_id = ?", userId).Update("amount", updated).Error; err != nil {
			return err
		}

		return nil
	})

	return updated, err
}

func (db *DB) RecordRound(round *Round) error {
	return db.Create(round).Error
}

func (db *DB) FetchUserRounds(userId uint, limit int) ([]Round, error) {
	rounds := []Round{}
	err := db.Where("user_id = ?", userId).Order("timestamp DESC").Limit(limit).Find(&rounds).Error

	return rounds, err
}

func (db *DB) FetchLatestRounds(limit int) ([]Round, error) {
	rounds := []Round{}
	err := db.Order("timestamp DESC").Limit(limit).Find(&rounds).Error

	return rounds, err
}

func (db *DB) GetUserStats(userId uint) (UserStats, error) {
	stats := UserStats{}
	err := db.Where("user_id = ?", userId).First(&stats).Error

	return stats, err
}

// BumpUserStats adds one decided round to the counters.
func (db *DB) BumpUserStats(userId uint, won bool) error {
	column := "total_losses"
	if won {
		column = "total_wins"
	}
	return db.Model(&UserStats{}).Where("user_id = ?", userId).
		Updates(map[string]interface{}{
			"games_played": gorm.Expr("games_played + 1"),
			column:         gorm.Expr(column + " + 1"),
		}).Error
}

var boundaryIntervals = map[string]string{
	"daily":   "1 day",
	"weekly":  "1 week",
	"monthly": "1 month",
}

// FetchLeaderboardVolume ranks users by total staked within the boundary,
// FetchLeaderboardProfit by payout minus stake.
func (db *DB) FetchLeaderboardVolume(timeBoundaries string) ([]responses.Leaderboard, error) {
	return db.fetchLeaderboard("SUM(rounds.stake)", timeBoundaries)
}

func (db *DB) FetchLeaderboardProfit(timeBoundaries string) ([]responses.Leaderboard, error) {
	return db.fetchLeaderboard("SUM(rounds.payout - rounds.stake)", timeBoundaries)
}

func (db *DB) fetchLeaderboard(aggregate string, timeBoundaries string) ([]responses.Leaderboard, error) {
	where := ""
	if timeBoundaries != "all" {
		interval, ok := boundaryIntervals[timeBoundaries]
		if !ok {
			return nil, errors.New("unknown time boundary")
		}
		where = "WHERE rounds.timestamp > now() - interval '" + interval + "'"
	}

	result := make([]responses.Leaderboard, 20)
	res := db.Raw(`SELECT rounds.user_id, rounds.total, users.username FROM (
                    SELECT
                        rounds.user_id,
                        `+aggregate+` as total
                    FROM rounds
                    `+where+`
                    GROUP BY rounds.user_id) as rounds
            INNER JOIN users ON users.id=rounds.user_id
            ORDER BY total DESC
            LIMIT ?`, 20).Scan(&result)
	if res.Error != nil {
		return nil, res.Error
	}

	return result[:res.RowsAffected], nil
}
