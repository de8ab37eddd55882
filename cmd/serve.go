package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"lead-capture-backend/crm"
	"lead-capture-backend/db"
	"lead-capture-backend/middleware"
	"lead-capture-backend/notifications"
	"lead-capture-backend/routes"
	"lead-capture-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the database and run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	gin.SetMode(gin.ReleaseMode)

	s, conn, err := openStore()
	if err != nil {
		return err
	}
	if err := db.Migrate(conn); err != nil {
		return err
	}

	var mailer notifications.Mailer
	if cfg.Mail.Enabled() {
		mailer = utils.NewSMTPMailer(cfg.Mail.Server, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password, cfg.Mail.DefaultSender)
	} else {
		utils.LogWarn("MAIL_SERVER not configured, notifications disabled")
	}

	syncer := crm.NewSyncer(crm.Select(cfg), s)
	if cfg.JWTSecret == "" {
		utils.LogWarn("JWT_SECRET not configured, admin API disabled")
	}

	r := routes.SetupRouter(routes.Deps{
		DB:       conn,
		Store:    s,
		Notifier: notifications.New(mailer, cfg.Mail),
		CRM:      syncer,
		Policy: middleware.NewPolicy(middleware.PolicyConfig{
			PerMinute: cfg.RateLimitPerMinute,
			Burst:     cfg.RateLimitBurst,
			Allowlist: cfg.IPAllowlist,
			Blocklist: cfg.IPBlocklist,
		}),
		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORSOrigin,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		utils.Logger.WithFields(logrus.Fields{
			"port": cfg.Port,
			"crm":  syncer.ProviderName(),
		}).Info("Server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	utils.LogInfo("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
