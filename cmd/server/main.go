package main

import (
	"os"

	"github.com/brett-smythe/eleanor/server"
	"github.com/brett-smythe/eleanor/store"
	"github.com/brett-smythe/eleanor/utils/dotenv"
	Flag "github.com/brett-smythe/eleanor/utils/flag"
	Logger "github.com/brett-smythe/eleanor/utils/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}
	Flag.ParseFlags()
	Logger.InitLogger()

	db, err := store.GetDBConnection()
	if err != nil {
		Logger.Log.WithError(err).Fatal("cannot connect to database")
	}
	Logger.Log.Info("setting up database for eleanor")
	if err := store.DatabaseSetupAndMigration(db); err != nil {
		Logger.Log.WithError(err).Fatal("database migration failed")
	}

	// Default with the Logger and Recovery middleware already attached
	router := gin.Default()
	router.Use(cors.Default())

	server.RegisterRoutes(router, store.NewStore(db))

	port := os.Getenv("ELEANOR_PORT")
	if port == "" {
		port = "8080"
	}
	Logger.Log.Info("===== Eleanor API Server Started =====")
	router.Run(":" + port)
}
