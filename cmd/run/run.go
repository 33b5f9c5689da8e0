package main

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"luckyace.io/backend/api"
	"luckyace.io/backend/communications"
	"luckyace.io/backend/config"
	"luckyace.io/backend/db"
	"luckyace.io/backend/engine"
	"luckyace.io/backend/requests"
)

func main() {
	env := config.Env{}
	err := config.LoadEnv(&env)
	if err != nil {
		slog.Error("Error loading config", "err", err)
		return
	}
	router := gin.Default()

	DBUrl := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable password=%s", env.DBHost, env.DBPort, env.DBUser, env.DBName, env.DBUserPwd)
	DB, err := gorm.Open(postgres.Open(DBUrl), &gorm.Config{})
	if err != nil {
		slog.Error("Error connecting to db", "err", err)
		return
	} else {
		slog.Info("Connected to db")
	}

	actionChannel := make(chan requests.GameAction)

	communications.New()
	go communications.ManagerPub.Run()
	sCtrl := api.SharedController{Db: &db.DB{DB: DB}, Env: &env, Manager: communications.ManagerPub, EngineChannel: actionChannel}

	gameEngine := engine.New(actionChannel, communications.ManagerPub, &db.DB{DB: DB})
	go gameEngine.Run()

	router.Use(api.CORSMiddleware())

	api.AuthEndpoints(&sCtrl, router)
	api.UserEndpoints(&sCtrl, router)
	api.GameEndpoints(&sCtrl, router)
	api.GeneralEndpoints(&sCtrl, router)
	api.RoundsEndpoints(&sCtrl, router)
	router.Run(fmt.Sprintf("%s:%s", env.ServerHost, env.ServerPort))

}
