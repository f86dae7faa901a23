package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/clinichq/clinic-manager/internal/domain/entity"
)

// indexAccountDoc upserts one account document into the search index.
// Failures are logged and swallowed; search staleness never blocks a
// write path.
func indexAccountDoc(ctx context.Context, es *elasticsearch.Client, index string, logger *logrus.Logger, a *entity.Account) error {
	if es == nil || index == "" {
		return nil
	}
	doc := map[string]any{
		"id":         a.ID,
		"email":      a.Email,
		"name":       a.Name,
		"role":       string(a.Role),
		"status":     string(a.Status),
		"created_at": a.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: index, DocumentID: a.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, es)
	if err != nil {
		if logger != nil {
			logger.WithError(err).WithField("account_id", a.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && logger != nil {
		logger.WithField("status", res.Status()).WithField("account_id", a.ID).Warn("es index response error")
	}
	return nil
}
