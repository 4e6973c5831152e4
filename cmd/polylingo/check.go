package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fpang/polylingo/internal/auth"
	"github.com/fpang/polylingo/internal/cli"
	"github.com/fpang/polylingo/internal/translate"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that the Groq API key works",
	Long: `Check resolves the Groq API key and makes one minimal chat-completion
call, then reports whether the key is valid, rate limited, or unreachable.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := cli.LoadConfig()
	key, err := auth.GetAPIKey(auth.Groq)
	if err != nil {
		return err
	}
	cfg.Groq.APIKey = key

	g, err := translate.NewGroqCompleter(cfg.Groq)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Groq.Timeout)
	defer cancel()

	start := time.Now()
	_, err = g.Complete(ctx, "Reply with the single word OK.", "ping")
	elapsed := time.Since(start)
	if err != nil {
		perr := auth.Classify(err)
		log.Debug().Err(err).Str("failure", perr.Type.String()).Dur("elapsed", elapsed).Msg("Groq check failed")
		return errors.New(perr.Message)
	}

	fmt.Printf("Groq API key OK (model %s, %s)\n", g.Model(), cli.FormatElapsed(elapsed))
	return nil
}
