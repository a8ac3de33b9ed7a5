package es

import (
	"context"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v9"
	"go.uber.org/zap"

	"github.com/Skotchmaster/coderr/pkg/logging"
)

// NewClient connects to Elasticsearch and checks the cluster answers.
func NewClient(ctx context.Context, url, user, password string) (*elasticsearch.Client, error) {
	l := logging.FromContext(ctx).With(zap.String("es_url", url))

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("es: create client: %w", err)
	}

	res, err := client.Info(client.Info.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("es: info: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		l.Warn("es_info_failed", zap.String("status", res.Status()), zap.ByteString("body", body))
		return nil, fmt.Errorf("es: info returned %s", res.Status())
	}

	l.Info("es_connected")
	return client, nil
}
