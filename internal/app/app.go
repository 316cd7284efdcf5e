package app

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"vnechat/sms_dispatch/internal/config"
	"vnechat/sms_dispatch/internal/handler"
	"vnechat/sms_dispatch/internal/pkg/sms"
	"vnechat/sms_dispatch/internal/repository"
	"vnechat/sms_dispatch/internal/service"
)

func Run(cfg *config.Config) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.DemoMode() {
		log.Println("WARNING: SMS_RU_API_KEY is not set, codes are returned to the caller instead of being sent")
		if cfg.Env == "production" {
			log.Println("WARNING: demo mode is active with APP_ENV=production")
		}
	}

	provider := sms.NewSMSRuClient(sms.SMSRuOptions{
		BaseURL: cfg.SMSRuBaseURL,
		From:    cfg.SMSRuFrom,
		Test:    cfg.SMSRuTest,
		Timeout: cfg.ProviderTimeout(),
	})

	var opts []service.Option

	if cfg.RedisAddr != "" {
		rdb, err := repository.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatal(err)
		}
		defer rdb.Close()
		opts = append(opts, service.WithThrottle(repository.NewThrottleRepository(rdb)))
		log.Printf("Send cooldown enabled: %v per phone", cfg.Cooldown())
	}

	if cfg.DSN != "" {
		db, err := repository.NewDB(cfg.DSN)
		if err != nil {
			log.Fatal(err)
		}
		opts = append(opts, service.WithJournal(repository.NewDispatchRepository(db)))
		log.Println("Dispatch journal enabled")
	}

	smsService := service.NewSMSService(provider, cfg, opts...)
	smsHandler := handler.NewSMSHandler(smsService)

	server := NewServer(smsHandler)
	if err := server.Run(ctx, cfg.ServerPort); err != nil {
		log.Fatal(err)
	}
}
