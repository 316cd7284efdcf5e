// @title VneChat SMS Dispatch
// @version 0.1
// @description Sends one-time verification codes by SMS.

// @host localhost:8080
// @BasePath /api
// @schemes http

package main

import (
	"log"

	_ "vnechat/sms_dispatch/docs"
	"vnechat/sms_dispatch/internal/app"
	"vnechat/sms_dispatch/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	app.Run(cfg)
}
