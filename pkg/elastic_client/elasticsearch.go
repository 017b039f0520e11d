package elastic_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ecocitty/ecocitty/pkg/config"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/rs/zerolog/log"
)

const defaultIndexPrefix = "ecocitty-"

// Indexer writes persisted reports into one index per record kind so they can be searched and
// charted outside the API.
type Indexer struct {
	Client      *elasticsearch.Client
	IndexPrefix string
}

// Connect returns a nil Indexer when no Elasticsearch address is configured.
func Connect(cfg *config.Config) (*Indexer, error) {
	if cfg.ElasticsearchAddress == "" {
		log.Info().Msg("Skipping Elasticsearch setup")
		return nil, nil
	}

	retryBackoff := backoff.NewExponentialBackOff()

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.ElasticsearchAddress},
		Username:  cfg.ElasticsearchUsername,
		Password:  cfg.ElasticsearchPassword,

		RetryOnStatus: []int{502, 503, 504, 429},

		RetryBackoff: func(i int) time.Duration {
			if i == 1 {
				retryBackoff.Reset()
			}
			return retryBackoff.NextBackOff()
		},
		MaxRetries: 5,
	})
	if err != nil {
		return nil, err
	}

	res, err := es.Info()
	if err != nil {
		return nil, err
	}
	res.Body.Close()

	log.Info().Msgf("Elasticsearch client setup for %s", cfg.ElasticsearchAddress)

	return &Indexer{Client: es, IndexPrefix: defaultIndexPrefix}, nil
}

func (i *Indexer) IndexName(kind string) string {
	prefix := i.IndexPrefix
	if prefix == "" {
		prefix = defaultIndexPrefix
	}

	return prefix + kind
}

func (i *Indexer) Index(ctx context.Context, kind string, id string, document any) error {
	body, err := json.Marshal(document)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      i.IndexName(kind),
		DocumentID: id,
		Body:       bytes.NewReader(body),
	}

	res, err := req.Do(ctx, i.Client)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		responseBody, _ := io.ReadAll(res.Body)
		return fmt.Errorf("[%s] Error indexing document: %s", res.Status(), responseBody)
	}

	return nil
}

func (i *Indexer) Ping(ctx context.Context) error {
	res, err := i.Client.Ping(i.Client.Ping.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping: %s", res.Status())
	}

	return nil
}
