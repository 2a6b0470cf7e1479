package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/sirupsen/logrus"

	"github.com/crackit360/crackit360-api/internal/config"
	"github.com/crackit360/crackit360-api/internal/container"
)

var adapter *httpadapter.HandlerAdapterV2

func init() {
	ctx := context.Background()

	s, err := container.Bootstrap(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to bootstrap")
	}
	c, err := container.New(config.DB, s)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to build container")
	}
	adapter = httpadapter.NewV2(c.Router())
}

func handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return adapter.ProxyWithContext(ctx, req)
}

func main() {
	lambda.Start(handler)
}
