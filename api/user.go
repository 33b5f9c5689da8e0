package api

import (
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"math/rand/v2"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/blake2b"
	"gorm.io/gorm"
	"luckyace.io/backend/db"
	"luckyace.io/backend/responses"
)

func (c *SharedController) GetUser(context *gin.Context) {
	userId := context.Param("userID")

	var userFull db.User
	if err := c.Db.Where("id = ?", userId).First(&userFull).Error; err != nil {
		slog.Error("User not found", "userId", userId)
		var err_msg, _ = json.Marshal(responses.ErrorMessage{Message: "User not found"})
		context.IndentedJSON(http.StatusInternalServerError,
			responses.JsonResponse[json.RawMessage]{Status: responses.Err, Data: err_msg})
		return
	}

	user := responses.User{
		ID:               userFull.ID,
		RegistrationTime: userFull.RegistrationTime,
		Username:         userFull.Username,
	}

	response, _ := json.Marshal(user)
	context.IndentedJSON(http.StatusOK, responses.JsonResponse[json.RawMessage]{Status: responses.Ok, Data: response})
}

func (c *SharedController) GetUserBalance(context *gin.Context) {
	userId, err := strconv.Atoi(context.Param("userID"))
	if err != nil {
		var err_msg, _ = json.Marshal(responses.ErrorMessage{Message: err.Error()})
		context.IndentedJSON(http.StatusInternalServerError,
			responses.JsonResponse[json.RawMessage]{Status: responses.Err, Data: err_msg})
		return
	}

	amount, err := c.Db.GetBalance(uint(userId))
	if err != nil {
		slog.Error("Balance not found", "userId", userId)
		var err_msg, _ = json.Marshal(responses.ErrorMessage{Message: "Balance not found"})
		context.IndentedJSON(http.StatusInternalServerError,
			responses.JsonResponse[json.RawMessage]{Status: responses.Err, Data: err_msg})
		return
	}

	response, _ := json.Marshal(responses.Balance{UserID: uint(userId), Amount: amount})
	context.IndentedJSON(http.StatusOK, responses.JsonResponse[json.RawMessage]{Status: responses.Ok, Data: response})
}

func (c *SharedController) GetUserStats(context *gin.Context) {
	userId, err := strconv.Atoi(context.Param("userID"))
	if err != nil {
		var err_msg, _ = json.Marshal(responses.ErrorMessage{Message: err.Error()})
		context.IndentedJSON(http.StatusInternalServerError,
			responses.JsonResponse[json.RawMessage]{Status: responses.Err, Data: err_msg})
		return
	}

	stats, err := c.Db.GetUserStats(uint(userId))
	if err != nil {
		slog.Error("Stats not found", "userId", userId)
		var err_msg, _ = json.Marshal(responses.ErrorMessage{Message: "Stats not found"})
		context.IndentedJSON(http.StatusInternalServerError,
			responses.JsonResponse[json.RawMessage]{Status: responses.Err, Data: err_msg})
		return
	}

	response, _ := json.Marshal(responses.UserStats{
		UserID:      stats.UserID,
		GamesPlayed: stats.GamesPlayed,
		TotalWins:   stats.TotalWins,
		TotalLosses: stats.TotalLosses,
	})
	context.IndentedJSON(http.StatusOK, responses.JsonResponse[json.RawMessage]{Status: responses.Ok, Data: response})
}

func (c *SharedController) GetLatestGames(context *gin.Context) {
	userID, err := strconv.Atoi(context.Param("userID"))
	if err != nil {
		var err_msg, _ = json.Marshal(responses.ErrorMessage{Message: err.Error()})
		context.IndentedJSON(http.StatusInternalServerError,
			responses.JsonResponse[json.RawMessage]{Status: responses.Err, Data: err_msg})
		return
	}

	var games []string
	if err := c.Db.Raw(`
		SELECT DISTINCT ON (game) game FROM (
                SELECT game, timestamp FROM rounds WHERE rounds.user_id=$1 ORDER BY timestamp DESC LIMIT 2) as rounds
		`, userID,
	).Scan(&games).Error; err != nil {
		slog.Error("Games not found", "userId", userID)
		var err_msg, _ = json.Marshal(responses.ErrorMessage{Message: "User not found"})
		context.IndentedJSON(http.StatusInternalServerError,
			responses.JsonResponse[json.RawMessage]{Status: responses.Err, Data: err_msg})
		return
	}

	response, _ := json.Marshal(games)
	context.IndentedJSON(http.StatusOK, responses.JsonResponse[json.RawMessage]{Status: responses.Ok, Data: response})
}

func (c *SharedController) SetUserSeed(context *gin.Context) {
	userSeed := context.Param("newSeed")

	sub := context.GetString("uuid")
	if sub == "" {
		return
	}

	userId, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		slog.Error("Bad subject claim", "sub", sub, "err", err)
		return
	}

	hashed := blake2b.Sum256([]byte(userSeed))
	hashedSeed := hex.EncodeToString(hashed[:])
	seed := &db.UserSeed{
		UserID:   uint(userId),
		UserSeed: hashedSeed,
	}

	if err := c.Db.Create(seed).Error; err != nil {
		slog.Error("Failed adding a seed", "err", err)
		var err_msg, _ = json.Marshal(responses.ErrorMessage{Message: "Adding a seed failed"})
		context.IndentedJSON(http.StatusInternalServerError,
			responses.JsonResponse[json.RawMessage]{Status: responses.Err, Data: err_msg})
		return
	}

	response, _ := json.Marshal("Seed was added")
	context.IndentedJSON(http.StatusOK, responses.JsonResponse[json.RawMessage]{Status: responses.Ok, Data: response})
}

func (c *SharedController) GetUserSeed(context *gin.Context) {
	seedId := context.Param("seedId")

	sub := context.GetString("uuid")
	if sub == "" {
		return
	}

	userId, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		slog.Error("Bad subject claim", "sub", sub, "err", err)
		return
	}

	seed := &db.UserSeed{}
	if seedId == "" || seedId == "0" {
		err := c.Db.Where("user_id = ?", userId).Order("created_at DESC").First(seed).Error
		if err != nil {
			slog.Error("Error getting user seed", "err", err)
			var err_msg, _ = json.Marshal(responses.ErrorMessage{Message: "Error getting user seed"})
			context.IndentedJSON(http.StatusInternalServerError,
				responses.JsonResponse[json.RawMessage]{Status: responses.Err, Data: err_msg})
			return
		}
	} else {
		seedIdNum, err := strconv.ParseUint(seedId, 10, 32)
		if err != nil {
			slog.Error("Bad seed id", "seedId", seedId, "err", err)
			return
		}

		err = c.Db.Where("user_id = ? AND id = ?", userId, seedIdNum).Order("created_at DESC").First(seed).Error
		if err != nil {
			slog.Error("Error getting user seed", "err", err)
			var err_msg, _ = json.Marshal(responses.ErrorMessage{Message: "Error getting user seed"})
			context.IndentedJSON(http.StatusInternalServerError,
				responses.JsonResponse[json.RawMessage]{Status: responses.Err, Data: err_msg})
			return
		}
	}
	response, _ := json.Marshal(seed)
	context.IndentedJSON(http.StatusOK, responses.JsonResponse[json.RawMessage]{Status: responses.Ok, Data: response})
}

func (c *SharedController) GetServerSeed(context *gin.Context) {
	seedId := context.Param("seedId")

	sub := context.GetString("uuid")
	if sub == "" {
		return
	}

	userId, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		slog.Error("Bad subject claim", "sub", sub, "err", err)
		return
	}

	seed := &db.ServerSeed{}
	if seedId == "" || seedId == "0" {
		err := c.Db.Where("user_id = ?", userId).Order("created_at DESC").First(seed).Error
		if err != nil {
			slog.Error("Error getting server seed", "err", err)
			var err_msg, _ = json.Marshal(responses.ErrorMessage{Message: "Error getting server seed"})
			context.IndentedJSON(http.StatusInternalServerError,
				responses.JsonResponse[json.RawMessage]{Status: responses.Err, Data: err_msg})
			return
		}
	} else {
		seedIdNum, err := strconv.ParseUint(seedId, 10, 32)
		if err != nil {
			slog.Error("Bad seed id", "seedId", seedId, "err", err)
			return
		}

		err = c.Db.Where("user_id = ? AND id = ?", userId, seedIdNum).Order("created_at DESC").First(seed).Error
		if err != nil {
			slog.Error("Error getting server seed", "err", err)
			var err_msg, _ = json.Marshal(responses.ErrorMessage{Message: "Error getting server seed"})
			context.IndentedJSON(http.StatusInternalServerError,
				responses.JsonResponse[json.RawMessage]{Status: responses.Err, Data: err_msg})
			return
		}
	}

	// an unrevealed seed is only ever shown as its hash commitment
	if !seed.Revealed {
		hashed := blake2b.Sum256([]byte(seed.ServerSeed))
		seed.ServerSeed = hex.EncodeToString(hashed[:])
	}
	response, _ := json.Marshal(seed)
	context.IndentedJSON(http.StatusOK, responses.JsonResponse[json.RawMessage]{Status: responses.Ok, Data: response})
}

// NewServerSeed reveals the active server seed and rotates in a fresh one.
func (c *SharedController) NewServerSeed(context *gin.Context) {
	sub := context.GetString("uuid")
	if sub == "" {
		return
	}

	userId, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		slog.Error("Bad subject claim", "sub", sub, "err", err)
		return
	}

	randomNumber := strconv.FormatInt(rand.Int64N(1000000000000000000), 10) + c.Env.PasswordSalt + strconv.FormatInt(rand.Int64N(1000000000000000000), 10)

	hashed := blake2b.Sum256([]byte(randomNumber))
	hashedSeed := hex.EncodeToString(hashed[:])
	seed := &db.ServerSeed{
		UserID:     uint(userId),
		ServerSeed: hashedSeed,
		Revealed:   false,
	}

	err = c.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db.ServerSeed{}).Where("user_id=? AND revealed=FALSE", userId).Update("revealed", true).Error; err != nil {
			return err
		}
		if err := tx.Create(seed).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		slog.Error("Failed rotating server seed", "err", err)
		var err_msg, _ = json.Marshal(responses.ErrorMessage{Message: "Rotating server seed failed"})
		context.IndentedJSON(http.StatusInternalServerError,
			responses.JsonResponse[json.RawMessage]{Status: responses.Err, Data: err_msg})
		return
	}

	response, _ := json.Marshal(hashedSeed)
	context.IndentedJSON(http.StatusOK, responses.JsonResponse[json.RawMessage]{Status: responses.Ok, Data: response})
}

func UserEndpoints(sCtrl *SharedController, router *gin.Engine) {
	router.GET("/user/userseed/:seedId", AuthMiddleware(), sCtrl.GetUserSeed)
	router.GET("/user/userseed", AuthMiddleware(), sCtrl.GetUserSeed)
	router.GET("/user/serverseed/:seedId", AuthMiddleware(), sCtrl.GetServerSeed)
	router.GET("/user/serverseed", AuthMiddleware(), sCtrl.GetServerSeed)
	router.GET("/user/:userID", sCtrl.GetUser)
	router.POST("/user/userseed/:newSeed", AuthMiddleware(), sCtrl.SetUserSeed)
	router.POST("/user/serverseed", AuthMiddleware(), sCtrl.NewServerSeed)
	router.GET("/user/balance/:userID", sCtrl.GetUserBalance)
	router.GET("/user/stats/:userID", sCtrl.GetUserStats)
	router.GET("/user/latest/:userID", sCtrl.GetLatestGames)
}
