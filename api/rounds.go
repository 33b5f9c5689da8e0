package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"luckyace.io/backend/responses"
)

func (c *SharedController) GetRounds(context *gin.Context) {
	gameName := context.Param("gameName")

	var rounds []responses.Round
	if gameName == "" {
		c.Db.Raw(`
		SELECT
                rounds.id,
                rounds.timestamp,
                rounds.game,
                rounds.stake,
                rounds.payout,
                rounds.detail,
                rounds.uuid,
                rounds.user_id,
                users.username,
                rounds.user_seed_id,
                rounds.server_seed_id
            FROM rounds
            INNER JOIN users ON rounds.user_id=users.id
            ORDER BY rounds.timestamp DESC
            LIMIT $1
	`, 10).Scan(&rounds)
	} else {
		c.Db.Raw(`
		SELECT
                rounds.id,
                rounds.timestamp,
                rounds.game,
                rounds.stake,
                rounds.payout,
                rounds.detail,
                rounds.uuid,
                rounds.user_id,
                users.username,
                rounds.user_seed_id,
                rounds.server_seed_id
            FROM rounds
            INNER JOIN users ON rounds.user_id=users.id
            WHERE rounds.game=$1
            ORDER BY rounds.timestamp DESC
            LIMIT $2
	`, gameName, 10).Scan(&rounds)
	}

	response, _ := json.Marshal(rounds)
	context.IndentedJSON(http.StatusOK, responses.JsonResponse[json.RawMessage]{Status: responses.Ok, Data: response})
}

func (c *SharedController) GetUserRounds(context *gin.Context) {
	offset := 0
	if strOffset := context.Query("offset"); strOffset != "" {
		parsed, err := strconv.Atoi(strOffset)
		if err != nil || parsed < 0 {
			var err_msg, _ = json.Marshal(responses.ErrorMessage{Message: "bad offset"})
			context.IndentedJSON(http.StatusInternalServerError,
				responses.JsonResponse[json.RawMessage]{Status: responses.Err, Data: err_msg})
			return
		}
		offset = parsed
	}

	userID, err := strconv.Atoi(context.Param("userID"))
	if err != nil {
		var err_msg, _ = json.Marshal(responses.ErrorMessage{Message: err.Error()})
		context.IndentedJSON(http.StatusInternalServerError,
			responses.JsonResponse[json.RawMessage]{Status: responses.Err, Data: err_msg})
		return
	}

	var rounds []responses.Round
	c.Db.Raw(`
	    SELECT
                rounds.id,
                rounds.timestamp,
                rounds.game,
                rounds.stake,
                rounds.payout,
                rounds.detail,
                rounds.uuid,
                rounds.user_id,
                users.username,
                rounds.user_seed_id,
                rounds.server_seed_id
            FROM rounds
            INNER JOIN users ON rounds.user_id = users.id
            WHERE rounds.user_id = $1
            ORDER BY rounds.id DESC
            LIMIT $2
	    OFFSET $3
	`, userID, 10, offset).Scan(&rounds)

	response, _ := json.Marshal(rounds)
	context.IndentedJSON(http.StatusOK, responses.JsonResponse[json.RawMessage]{Status: responses.Ok, Data: response})
}

func RoundsEndpoints(sCtrl *SharedController, router *gin.Engine) {
	router.GET("/rounds/list/:gameName", sCtrl.GetRounds)
	router.GET("/rounds/list", sCtrl.GetRounds)
	router.GET("/rounds/user/:userID", sCtrl.GetUserRounds)
}
