package api

import (
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"luckyace.io/backend/auth"
	"luckyace.io/backend/communications"
	"luckyace.io/backend/requests"
	"luckyace.io/backend/responses"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func WebsocketsReader(conn *websocket.Conn, channel chan requests.WSrequest) {
	for {
		// Read message from client
		message := requests.WSrequest{}
		err := conn.ReadJSON(&message)
		if err != nil {
			slog.Error("Error while reading message", "err", err)
			break
		}
		channel <- message
	}
}

func WebsocketsHandler(c *gin.Context, sCtrl *SharedController) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("Upgrade failed", "err", err)
		return
	}
	readerChannel := make(chan requests.WSrequest)
	go WebsocketsReader(conn, readerChannel)

	managerFeed := make(chan communications.Broadcast)
	UUID := uuid.New()
	response := responses.WSresponse{
		Id:   0,
		Data: UUID,
	}
	conn.WriteJSON(&response)

	communications.ManagerPub.ManagerReceiver <- communications.ManagerEvent{
		Type: communications.SubscribeFeed,
		Body: communications.ManagerEventSubscribeFeed{
			Id:   UUID.String(),
			Feed: managerFeed,
		},
	}

	slog.Info("Connected", "id", UUID)

	userId := 0

	defer func() {
		conn.Close()
		communications.ManagerPub.ManagerReceiver <- communications.ManagerEvent{
			Type: communications.UnsubscribeFeed,
			Body: communications.ManagerEventUnsubscribeFeed{
				Id: UUID.String(),
			},
		}
	}()
	for {
		message := requests.WSrequest{}
		select {
		case response := <-managerFeed:
			conn.WriteJSON(response.Body)
			continue
		case recv := <-readerChannel:
			message = recv
		}

		response := responses.WSresponse{
			Id: message.Id,
		}
		switch message.Method {
		case "auth":
			token := ""
			err := json.Unmarshal(message.Data, &token)
			if err != nil {
				slog.Error("Auth error", "err", err)
				return
			}
			claims, err := auth.VerifyToken(token, []byte(sCtrl.Env.PasswordSalt))
			if err != nil {
				slog.Error("Error verifying token", "err", err)
				return
			}

			sub, _ := claims.GetSubject()
			userid, err := strconv.Atoi(sub)
			if err != nil {
				slog.Error("Bad subject claim", "sub", sub, "err", err)
				return
			}
			userId = userid
			slog.Info("Auth successful", "userId", userId)
		case "subscribe_rounds":
			var sub requests.SubscribeRounds

			err := json.Unmarshal(message.Data, &sub)
			if err != nil {
				slog.Error("Error subscribing to rounds", "err", err)
				return
			}

			for _, game := range sub.Games {
				communications.ManagerPub.ManagerReceiver <- communications.ManagerEvent{
					Type: communications.SubscribeRounds,
					Body: communications.ManagerEventSubscribeRounds{
						Id:   UUID.String(),
						Game: game,
					},
				}
			}
		case "unsubscribe_rounds":
			var sub requests.SubscribeRounds

			err := json.Unmarshal(message.Data, &sub)
			if err != nil {
				slog.Error("Error unsubscribing from rounds", "err", err)
				return
			}

			for _, game := range sub.Games {
				communications.ManagerPub.ManagerReceiver <- communications.ManagerEvent{
					Type: communications.UnsubscribeRounds,
					Body: communications.ManagerEventUnsubscribeRounds{
						Id:   UUID.String(),
						Game: game,
					},
				}
			}
		case "subscribe_all_rounds":
			communications.ManagerPub.ManagerReceiver <- communications.ManagerEvent{
				Type: communications.SubscribeAllRounds,
				Body: communications.ManagerEventSubscribeAllRounds{
					Id: UUID.String(),
				},
			}
		case "unsubscribe_all_rounds":
			communications.ManagerPub.ManagerReceiver <- communications.ManagerEvent{
				Type: communications.UnsubscribeAllRounds,
				Body: communications.ManagerEventUnsubscribeAllRounds{
					Id: UUID.String(),
				},
			}
		case "action":
			if userId == 0 {
				continue
			}
			action := requests.GameAction{
				UserID: uint(userId),
				FeedID: UUID.String(),
				MsgID:  message.Id,
			}
			err := json.Unmarshal(message.Data, &action)
			if err != nil {
				slog.Error("Error parsing action", "err", err)
				return
			}

			sCtrl.EngineChannel <- action
		case "get_uuid":
			response.Data = UUID
			conn.WriteJSON(&response)
		default:
		}
	}
}

func GameEndpoints(sCtrl *SharedController, router *gin.Engine) {
	router.GET("/game/ws", func(c *gin.Context) { WebsocketsHandler(c, sCtrl) })
}
