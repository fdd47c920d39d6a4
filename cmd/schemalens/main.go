package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Protocol-Lattice/schemalens/client"
	"github.com/Protocol-Lattice/schemalens/handler"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "schemalens",
		Short:        "Schema intelligence server for the Dgraph admin console",
		SilenceUsage: true,
		RunE:         run,
	}
	cmd.Flags().String("addr", ":8088", "address to serve the editor API on")
	cmd.Flags().String("dgraph", "http://localhost:8080", "base URL of the Dgraph instance")
	cmd.Flags().Bool("debug", false, "enable debug logging")

	viper.SetEnvPrefix("SCHEMALENS")
	viper.AutomaticEnv()
	_ = viper.BindPFlags(cmd.Flags())
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	var log *zap.Logger
	var err error
	if viper.GetBool("debug") {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	defer log.Sync()

	addr := viper.GetString("addr")
	dgraphURL := viper.GetString("dgraph")

	srv := handler.NewServer(log, client.New(dgraphURL, nil))
	log.Info("serving editor API",
		zap.String("addr", addr),
		zap.String("dgraph", dgraphURL))
	return http.ListenAndServe(addr, srv.Routes())
}
