package cmd

import (
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/abhisek/orbitrest/internal/identity"
	"github.com/abhisek/orbitrest/internal/ratelimit"
	"github.com/abhisek/orbitrest/internal/seed"
	"github.com/abhisek/orbitrest/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.JWTSecret == "" {
			return errors.New("ORBITREST_JWT_SECRET must be set to serve")
		}
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if withSeed, _ := cmd.Flags().GetBool("seed"); withSeed {
			if _, err := seed.New(st, logger).Seed(ctx); err != nil {
				return err
			}
		}

		ident, err := identity.NewService(st.UserRepo(), identity.Config{
			Secret:   []byte(cfg.JWTSecret),
			TokenTTL: cfg.TokenTTL,
		})
		if err != nil {
			return err
		}

		opts := server.Options{
			Admins:         cfg.AdminUsers,
			SessionTTL:     cfg.TokenTTL,
			SecureCookie:   cfg.SecureCookie,
			TrustedProxies: cfg.TrustedProxies,
			Logger:         logger,
		}
		if cfg.RedisURL != "" {
			client, err := ratelimit.Open(ctx, cfg.RedisURL)
			if err != nil {
				return err
			}
			defer client.Close()
			limiter, err := ratelimit.NewRedisLimiter(client, cfg.AuthRateLimit, time.Minute)
			if err != nil {
				return err
			}
			opts.AuthLimiter = limiter
		}

		if !logger.Enabled(ctx, slog.LevelDebug) {
			gin.SetMode(gin.ReleaseMode)
		}
		return server.New(st, ident, opts).Run(ctx, addr, cfg.ReadTimeout, cfg.WriteTimeout)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides ORBITREST_ADDR)")
	serveCmd.Flags().Bool("seed", true, "Seed default concepts, planets and questions into empty tables")
}
