package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/etclabscore/jade-signer/internal/config"
	"github.com/etclabscore/jade-signer/internal/logging"
	"github.com/etclabscore/jade-signer/internal/rpcserver"
	"github.com/etclabscore/jade-signer/internal/service"
)

var listenAddr string

// serverCmd starts the JSON-RPC-over-HTTP listener spec.md §6 names:
// 127.0.0.1:1920 by default, serving the eleven signer_* methods.
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the offline JSON-RPC signing server",
	Long: `server opens (or creates) the keystore rooted at --base-path and serves
the signer_* JSON-RPC 2.0 methods over HTTP. It never dials out: every
chain it knows about is a local directory of encrypted keyfiles.`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().StringVar(&listenAddr, "listen", config.DefaultListen, "HTTP listen address for the JSON-RPC server")
	rootCmd.AddCommand(serverCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	level := logging.LevelForVerbosity(verbosity)
	if verbosity == 0 {
		if env := os.Getenv("JADE_SIGNER_LOG_LEVEL"); env != "" {
			level = env
		}
	}
	log := logging.New(level, "text")

	resolvedBasePath := viper.GetString("base-path")
	if resolvedBasePath == "" {
		resolvedBasePath = basePath
	}

	facade := service.New(resolvedBasePath)
	rpcSrv := rpcserver.New(facade, log)
	handler, err := rpcserver.NewHTTPHandler(rpcSrv)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              listenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("listen", listenAddr).WithField("base_path", resolvedBasePath).Info("jade-signer rpc server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Info("shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
		return err
	}
	log.Info("jade-signer rpc server stopped")
	return nil
}
