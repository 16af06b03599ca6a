package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SuperiorKe/sms-africas-talking/app/config"
	"github.com/SuperiorKe/sms-africas-talking/app/controllers"
	"github.com/SuperiorKe/sms-africas-talking/app/routes"
	"github.com/SuperiorKe/sms-africas-talking/app/services/ai"
	"github.com/SuperiorKe/sms-africas-talking/app/services/sms"
	"github.com/SuperiorKe/sms-africas-talking/app/sessions"
	"github.com/SuperiorKe/sms-africas-talking/app/sources/psql"
	"github.com/SuperiorKe/sms-africas-talking/app/sources/psql/dao"
	"github.com/SuperiorKe/sms-africas-talking/app/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	userDAO := dao.NewUserDAO(db.DB)
	messageDAO := dao.NewMessageDAO(db.DB)

	llm := ai.NewGeminiClient(cfg)
	notifier := sms.NewATClient(cfg)
	if !llm.Ready() {
		logging.AppLogger.Warn("GEMINI_API_KEY not configured, static replies only")
	}
	if !notifier.Ready() {
		logging.AppLogger.Warn("Africa's Talking credentials not fully configured")
	}

	store := sessions.NewStore(cfg.SessionTTL, sessions.DefaultMaxTurns)
	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	defer sweepCancel()
	store.StartSweeper(sweepCtx, cfg.SweepInterval)

	smsCtrl := controllers.NewSMSController(userDAO, messageDAO, llm, notifier)
	webCtrl := controllers.NewWebController(store, messageDAO, llm)
	healthCtrl := controllers.NewHealthController(db, llm, notifier)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	routes.RegisterSMS(r, smsCtrl, cfg)
	routes.RegisterWeb(r, webCtrl, cfg)
	routes.RegisterHealth(r, healthCtrl)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
