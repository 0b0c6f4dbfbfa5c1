package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/calehh/evote/client"
	"github.com/calehh/evote/service"
	"github.com/calehh/evote/view"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the voting page",
	RunE:  serveRun,
}

func init() {
	urlFlag(serveCmd, &providerURL)
	serveCmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "listen address (overrides server.listen_address)")
}

func serveRun(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if listenAddr != "" {
		cfg.Server.ListenAddress = listenAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli, err := client.NewVotingClient(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cli.Close()

	store := view.NewStore(cli, logger)
	store.Subscribe(func(st view.State) {
		logger.Debug("redraw", "revision", st.Revision, "phase", st.Phase, "candidates", len(st.Candidates))
	})
	store.Mount(ctx)

	srv := service.NewService(cfg.Server.ListenAddress, store, logger)
	err = srv.Start(ctx)
	logger.Info("shut down")
	return err
}
