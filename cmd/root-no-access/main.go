// root-no-access is an AWS Config custom rule that reports the account as
// NON_COMPLIANT when the root user's password or access keys were used in the
// last 24 hours.
//
// This binary is designed to run as an AWS Lambda function invoked by AWS Config.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/locktivity/config-rule-root-no-access/internal/rule"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	level, err := parseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With("version", Version)
	slog.SetDefault(logger)

	cfg, err := loadConfig(os.LookupEnv)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	handler, err := rule.New(cfg, logger)
	if err != nil {
		logger.Error("creating handler", "error", err)
		os.Exit(1)
	}

	lambda.Start(handler.Handle)
}
