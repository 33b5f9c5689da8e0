package api

import (
	"luckyace.io/backend/communications"
	"luckyace.io/backend/config"
	"luckyace.io/backend/db"
	"luckyace.io/backend/requests"
)

type SharedController struct {
	Db            *db.DB
	Env           *config.Env
	Manager       *communications.Manager
	EngineChannel chan requests.GameAction
}
