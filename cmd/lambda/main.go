// Package main runs the graph API as an AWS Lambda function behind an
// API Gateway HTTP API. Routing is the same as the standalone server.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"graphd/infrastructure/config"
	"graphd/infrastructure/di"
	"graphd/interfaces/http/rest"
)

// app holds everything that survives between invocations of a warm container
type app struct {
	adapter       *chiadapter.ChiLambdaV2
	logger        *zap.Logger
	coldStart     bool
	coldStartTime time.Time
}

// newApp wires the container and wraps the router for Lambda. The returned
// cleanup is only reached in tests; a Lambda container is frozen, not stopped.
func newApp(ctx context.Context, cfg *config.Config) (*app, func(), error) {
	started := time.Now()

	container, cleanup, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize container: %w", err)
	}

	router := rest.NewRouter(
		container.CommandBus,
		container.QueryBus,
		container.Graph,
		container.Metrics,
		container.Logger,
		rest.Options{
			Debug:          cfg.IsDevelopment(),
			EnableCORS:     cfg.EnableCORS,
			AllowedOrigins: cfg.AllowedOrigins,
			Version:        di.Version,
		},
	)

	mux, ok := router.Setup().(*chi.Mux)
	if !ok {
		cleanup()
		return nil, nil, fmt.Errorf("router is not a chi mux")
	}

	a := &app{
		adapter:       chiadapter.NewV2(mux),
		logger:        container.Logger,
		coldStart:     true,
		coldStartTime: started,
	}
	a.logger.Info("Lambda cold start completed", zap.Duration("duration", time.Since(started)))
	return a, cleanup, nil
}

// Handle is the Lambda function handler
func (a *app) Handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	resp, err := a.adapter.ProxyWithContextV2(ctx, req)
	if err != nil {
		a.logger.Error("Lambda proxy failed",
			zap.Error(err),
			zap.String("path", req.RequestContext.HTTP.Path),
			zap.String("request_id", req.RequestContext.RequestID),
		)
		return resp, err
	}

	if resp.Headers == nil {
		resp.Headers = make(map[string]string)
	}
	if a.coldStart {
		resp.Headers["X-Cold-Start"] = "true"
		resp.Headers["X-Cold-Start-Duration"] = time.Since(a.coldStartTime).String()
		a.coldStart = false
	} else {
		resp.Headers["X-Cold-Start"] = "false"
	}
	if req.RequestContext.RequestID != "" {
		resp.Headers["X-Lambda-Request-ID"] = req.RequestContext.RequestID
	}

	a.logger.Debug("Lambda response",
		zap.String("method", req.RequestContext.HTTP.Method),
		zap.String("path", req.RequestContext.HTTP.Path),
		zap.String("request_id", req.RequestContext.RequestID),
		zap.Int("status_code", resp.StatusCode),
		zap.String("stage", req.RequestContext.Stage),
	)
	return resp, nil
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	a, _, err := newApp(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	lambda.Start(a.Handle)
}
