package engine

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"luckyace.io/backend/communications"
	"luckyace.io/backend/db"
	"luckyace.io/backend/games"
	"luckyace.io/backend/requests"
	"luckyace.io/backend/responses"
)

const (
	OpPlaceBet      = "place_bet"
	OpDeal          = "deal"
	OpHit           = "hit"
	OpStand         = "stand"
	OpToggleDiscard = "toggle_discard"
	OpDraw          = "draw"
	OpComplete      = "complete"
	OpRoll          = "roll"
	OpSpin          = "spin"
	OpReset         = "reset"
)

// Table is one user's set of live game engines, all drawing from the same
// seeded number stream and settling against the same balance row.
type Table struct {
	UserID       uint
	UserSeedID   uint
	ServerSeedID uint
	Engines      map[string]games.Engine
}

// Engine consumes table actions serially, so per-user game state never needs
// locking.
type Engine struct {
	Actions chan requests.GameAction
	Tables  map[uint]*Table
	Manager *communications.Manager
	Db      *db.DB
}

func New(actions chan requests.GameAction, manager *communications.Manager, database *db.DB) *Engine {
	return &Engine{
		Actions: actions,
		Tables:  make(map[uint]*Table),
		Manager: manager,
		Db:      database,
	}
}

func (e *Engine) table(userId uint) (*Table, error) {
	if table, ok := e.Tables[userId]; ok {
		return table, nil
	}

	userSeed := &db.UserSeed{}
	if err := e.Db.Where("user_id = ?", userId).Order("created_at DESC").First(userSeed).Error; err != nil {
		return nil, fmt.Errorf("fetching user seed: %w", err)
	}
	serverSeed := &db.ServerSeed{}
	if err := e.Db.Where("user_id=? AND revealed=FALSE", userId).First(serverSeed).Error; err != nil {
		return nil, fmt.Errorf("fetching server seed: %w", err)
	}

	rng := games.NewHashSource(userSeed.UserSeed, serverSeed.ServerSeed, uint64(time.Now().Unix()))
	ledger := &db.UserLedger{DB: e.Db, UserID: userId}
	stats := &db.UserStatsRecorder{DB: e.Db, UserID: userId}

	table := &Table{
		UserID:       userId,
		UserSeedID:   userSeed.ID,
		ServerSeedID: serverSeed.ID,
		Engines: map[string]games.Engine{
			games.GameBlackjack: games.NewBlackjack(rng, ledger, stats),
			games.GamePoker:     games.NewPoker(rng, ledger, stats),
			games.GameBaccarat:  games.NewBaccarat(rng, ledger, stats),
			games.GameCraps:     games.NewCraps(rng, ledger, stats),
			games.GameRoulette:  games.NewRoulette(rng, ledger, stats),
			games.GameSlots:     games.NewSlotMachine(rng, ledger, stats),
		},
	}
	e.Tables[userId] = table
	return table, nil
}

func apply(table *Table, action requests.GameAction) (games.Engine, error) {
	game, ok := table.Engines[action.Game]
	if !ok {
		return nil, fmt.Errorf("unknown game %q", action.Game)
	}

	if action.Op == OpReset {
		return game, game.Reset()
	}

	switch g := game.(type) {
	case *games.Blackjack:
		switch action.Op {
		case OpPlaceBet:
			return game, g.PlaceBet(action.Amount)
		case OpDeal:
			return game, g.Deal()
		case OpHit:
			return game, g.Hit()
		case OpStand:
			return game, g.Stand()
		}
	case *games.Poker:
		switch action.Op {
		case OpPlaceBet:
			return game, g.PlaceBet(action.Amount)
		case OpDeal:
			return game, g.Deal()
		case OpToggleDiscard:
			return game, g.ToggleDiscard(action.Index)
		case OpDraw:
			return game, g.Draw()
		}
	case *games.Baccarat:
		switch action.Op {
		case OpPlaceBet:
			return game, g.PlaceBet(games.BaccaratBet(action.Category), action.Amount)
		case OpDeal:
			return game, g.Deal()
		case OpComplete:
			return game, g.Complete()
		}
	case *games.Craps:
		switch action.Op {
		case OpPlaceBet:
			return game, g.PlaceBet(games.CrapsBet(action.Category), action.Amount)
		case OpRoll:
			return game, g.Roll()
		}
	case *games.Roulette:
		switch action.Op {
		case OpPlaceBet:
			return game, g.PlaceBet(games.RouletteBet(action.Category), action.Amount)
		case OpSpin:
			return game, g.Spin()
		}
	case *games.SlotMachine:
		switch action.Op {
		case OpPlaceBet:
			return game, g.PlaceBet(action.Amount)
		case OpSpin:
			return game, g.Spin()
		}
	}
	return game, fmt.Errorf("unknown operation %q for game %q", action.Op, action.Game)
}

func (e *Engine) Run() {
	slog.Info("Starting game engine")
	for {
		action, ok := <-e.Actions
		if !ok {
			slog.Error("Action channel is closed")
			break
		}
		slog.Info("Received action", "user", action.UserID, "game", action.Game, "op", action.Op)

		table, err := e.table(action.UserID)
		if err != nil {
			slog.Error("Error building user table", "user", action.UserID, "err", err)
			e.sendError(action, err)
			continue
		}

		game, err := apply(table, action)
		if err != nil {
			slog.Warn("Action rejected", "user", action.UserID, "game", action.Game, "op", action.Op, "err", err)
			e.sendError(action, err)
			continue
		}

		balance, err := e.Db.GetBalance(action.UserID)
		if err != nil {
			slog.Error("Error fetching balance", "user", action.UserID, "err", err)
		}

		e.Manager.ManagerReceiver <- communications.ManagerEvent{
			Type: communications.DirectMessage,
			Body: communications.ManagerEventDirectMessage{
				Id: action.FeedID,
				Body: communications.Broadcast{Type: communications.TableUpdate, Body: responses.WSresponse{
					Id: action.MsgID,
					Data: responses.GameUpdate{
						Game:     game.Name(),
						Phase:    string(game.Phase()),
						Message:  game.Message(),
						Stake:    game.Stake(),
						Payout:   game.Payout(),
						Balance:  balance,
						Snapshot: game.Snapshot(),
					},
				}},
			},
		}

		if game.Phase() == games.PhaseFinished && action.Op != OpReset {
			e.persistRound(table, game, action)
		}
	}
}

func (e *Engine) sendError(action requests.GameAction, err error) {
	e.Manager.ManagerReceiver <- communications.ManagerEvent{
		Type: communications.DirectMessage,
		Body: communications.ManagerEventDirectMessage{
			Id: action.FeedID,
			Body: communications.Broadcast{Type: communications.TableUpdate, Body: responses.WSresponse{
				Id: action.MsgID,
				Data: responses.GameError{
					Game:    action.Game,
					Op:      action.Op,
					Message: err.Error(),
				},
			}},
		},
	}
}

// persistRound stores the finished round and fans it out to round
// subscribers.
func (e *Engine) persistRound(table *Table, game games.Engine, action requests.GameAction) {
	detail, err := json.Marshal(game.Snapshot())
	if err != nil {
		slog.Error("Error marshaling round detail", "err", err)
		return
	}

	round := db.Round{
		Game:         game.Name(),
		Stake:        game.Stake(),
		Payout:       game.Payout(),
		Detail:       string(detail),
		UUID:         uuid.New().String(),
		UserID:       table.UserID,
		UserSeedID:   table.UserSeedID,
		ServerSeedID: table.ServerSeedID,
	}
	if err := e.Db.RecordRound(&round); err != nil {
		slog.Error("Error recording round", "round", round, "err", err)
		return
	}

	var user db.User
	if err := e.Db.Where("id = ?", table.UserID).First(&user).Error; err != nil {
		slog.Error("User not found", "userId", table.UserID)
		return
	}

	e.Manager.ManagerReceiver <- communications.ManagerEvent{
		Type: communications.PropagateRound,
		Body: responses.Round{
			ID:           round.ID,
			Timestamp:    round.Timestamp,
			Game:         round.Game,
			Stake:        round.Stake,
			Payout:       round.Payout,
			Detail:       round.Detail,
			UUID:         round.UUID,
			UserID:       round.UserID,
			Username:     user.Username,
			UserSeedID:   round.UserSeedID,
			ServerSeedID: round.ServerSeedID,
		},
	}
}
