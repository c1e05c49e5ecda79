// Entry point for the serverless deployment behind API Gateway
package main

import (
	"context"

	"attendance.service/internal/bootstrap"
	"attendance.service/internal/config"
	"attendance.service/pkg/logger"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load configuration")
	}

	logger.Setup(cfg.IsLocalDev)

	// Built once per cold start and reused across invocations.
	container, err := bootstrap.New(context.Background(), cfg, "attendance-lambda")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialise service")
	}

	adapter := httpadapter.New(container.Handler)
	lambda.Start(adapter.ProxyWithContext)
}
