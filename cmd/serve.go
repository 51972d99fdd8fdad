package cmd

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rybkr/sudoku-solver/internal/server"
)

var (
	serveAddr         string
	serveSolveTimeout time.Duration
)

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Long: `Start an HTTP server exposing the solver and validator.

Endpoints:
  POST /api/v1/solve
  POST /api/v1/validate`,
		RunE: runServe,
	}

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().DurationVar(&serveSolveTimeout, "solve-timeout", server.DefaultSolveTimeout, "Per-request solve timeout")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	e := gin.Default()
	server.New(serveSolveTimeout).Register(e)

	log.Info().Str("addr", serveAddr).Msg("listening")
	if err := e.Run(serveAddr); err != nil {
		return fmt.Errorf("run server: %w", err)
	}
	return nil
}
