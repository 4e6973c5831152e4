// Package lambdaboot holds the cold-start steps shared by the Lambda
// entry points: AWS config, SSM secret fetch, and the startup log event.
package lambdaboot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"

	"github.com/fpang/polylingo/internal/logging"
)

// ErrEmptyParameter is returned when an SSM parameter exists but is blank.
var ErrEmptyParameter = errors.New("SSM parameter is empty")

// ParameterGetter is the subset of *ssm.Client used here.
type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// AWSClients holds the AWS SDK clients the Lambdas use.
type AWSClients struct {
	Config aws.Config
	SSM    *ssm.Client
}

// InitAWS loads the default AWS config.
func InitAWS(ctx context.Context) (AWSClients, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return AWSClients{}, fmt.Errorf("load AWS config: %w", err)
	}
	log.Debug().Str("region", cfg.Region).Msg("AWS config loaded")
	return AWSClients{Config: cfg, SSM: ssm.NewFromConfig(cfg)}, nil
}

// ResolveSecret returns current when it is already set (from the
// environment), otherwise the decrypted value of the SSM parameter. The
// value is never logged.
func ResolveSecret(ctx context.Context, client ParameterGetter, current, paramName string) (string, error) {
	if strings.TrimSpace(current) != "" {
		return current, nil
	}
	if client == nil {
		return "", fmt.Errorf("no SSM client to read %s", paramName)
	}

	start := time.Now()
	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(paramName),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("read SSM parameter %s: %w", paramName, err)
	}
	if out.Parameter == nil || strings.TrimSpace(aws.ToString(out.Parameter.Value)) == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyParameter, paramName)
	}
	log.Debug().Str("param", paramName).Dur("elapsed", time.Since(start)).Msg("Secret loaded from SSM")
	return strings.TrimSpace(aws.ToString(out.Parameter.Value)), nil
}

// StartupLog is a convenience wrapper for the startup logger.
func StartupLog(name string, initStart time.Time) *logging.StartupLogger {
	return logging.NewStartupLogger(name).InitDuration(time.Since(initStart))
}
