// Package main is the serverless translate function.
//
// It serves POST /api/translate behind API Gateway (HTTP API v2). The Groq
// key comes from GROQ_API_KEY or, failing that, from SSM Parameter Store;
// the function refuses to start without one.
//
// Endpoints:
//
//	POST    /api/translate  translate text (OPTIONS answers CORS preflight)
//	GET     /api/health     health check
package main

import (
	"context"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/rs/zerolog/log"

	"github.com/fpang/polylingo/internal/config"
	"github.com/fpang/polylingo/internal/httpapi"
	"github.com/fpang/polylingo/internal/lambdaboot"
	"github.com/fpang/polylingo/internal/logging"
	"github.com/fpang/polylingo/internal/translate"
)

var translator *translate.Translator

func init() {
	initStart := time.Now()
	logging.Init()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	fromEnv := cfg.Groq.APIKey != ""
	if !fromEnv {
		clients, err := lambdaboot.InitAWS(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize AWS clients")
		}
		cfg.Groq.APIKey, err = lambdaboot.ResolveSecret(ctx, clients.SSM, "", cfg.SSMGroqKeyParam)
		if err != nil {
			log.Fatal().Err(err).Str("param", cfg.SSMGroqKeyParam).Msg("Groq API key unavailable, refusing to start")
		}
	}

	translator, err = translate.New(cfg.Groq)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create translator")
	}

	lambdaboot.StartupLog("translate-lambda", initStart).
		CommitHash(commitHash).
		BuildTime(buildTime).
		Upstream("groq", cfg.Groq.BaseURL).
		SSMParam("groqKey", cfg.SSMGroqKeyParam).
		Feature("keyFromEnv", fromEnv).
		Config("model", cfg.Groq.Model).
		Config("timeout", cfg.Groq.Timeout.String()).
		Log()
}

func main() {
	adapter := httpadapter.NewV2(httpapi.NewTranslateFunction(translator))
	lambda.Start(adapter.ProxyWithContext)
}
