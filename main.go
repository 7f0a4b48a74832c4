package main

import (
	"os"

	"go_crm_backend/app"
	"go_crm_backend/config"
	"go_crm_backend/routes"

	"github.com/rs/zerolog/log"
)

func main() {
	config.LoadEnv()

	application := app.MustNew()
	defer application.Close()

	r := application.Router

	r.GET("/health", func(c *app.Ctx) { c.JSON(200, app.H{"status": "ok"}) })

	routes.RegisterRoutes(r, application)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	log.Info().Str("port", port).Msg("listening")
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server")
	}
}
