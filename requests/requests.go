package requests

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type Login struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type RegisterUser struct {
	Login    string `json:"login"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type WSrequest struct {
	Method string          `json:"method"`
	Id     uint            `json:"id"`
	Data   json.RawMessage `json:"data"`
}

// GameAction is one table operation sent over the websocket. Category and
// Index only matter for the operations that take them.
type GameAction struct {
	Game     string          `json:"game"`
	Op       string          `json:"op"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Index    int             `json:"index"`
	UserID   uint            `json:"-"`
	FeedID   string          `json:"-"`
	MsgID    uint            `json:"-"`
}

type SubscribeRounds struct {
	Games []string `json:"games"`
}
