package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-exercise-tracker/internal/domain/entity"
)

const (
	requestTimeout = 3 * time.Second
	maxResults     = 50
)

// ExerciseIndex mirrors exercise descriptions into Elasticsearch. Searches are
// always filtered by owner.
type ExerciseIndex struct {
	es    *elasticsearch.Client
	index string
}

// NewExerciseIndex returns nil when es is nil so callers can treat search as disabled.
func NewExerciseIndex(es *elasticsearch.Client, index string) *ExerciseIndex {
	if es == nil || index == "" {
		return nil
	}
	return &ExerciseIndex{es: es, index: index}
}

type exerciseDoc struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

func (x *ExerciseIndex) Index(ctx context.Context, ex *entity.Exercise) error {
	b, err := json.Marshal(exerciseDoc{
		ID:          ex.ID,
		Username:    ex.Username,
		Description: ex.Description,
		Category:    string(ex.Category.OrOther()),
		Duration:    ex.Duration,
		Date:        ex.Date.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.index, DocumentID: ex.ID, Body: bytes.NewReader(b), Refresh: "false"}
	return x.do(ctx, req)
}

func (x *ExerciseIndex) Remove(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: x.index, DocumentID: id}
	err := x.do(ctx, req)
	if se, ok := err.(*statusError); ok && se.code == 404 {
		return nil
	}
	return err
}

// Search returns ids of the owner's exercises matching q, best match first.
func (x *ExerciseIndex) Search(ctx context.Context, owner, q string) ([]string, error) {
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":     q,
						"fields":    []string{"description^2", "category"},
						"fuzziness": "AUTO",
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"username.keyword": owner},
				},
			},
		},
		"size":    maxResults,
		"_source": false,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := x.es.Search(
		x.es.Search.WithContext(c),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, &statusError{code: res.StatusCode, status: res.Status()}
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}

func (x *ExerciseIndex) do(ctx context.Context, req esapi.Request) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return &statusError{code: res.StatusCode, status: res.Status()}
	}
	return nil
}

type statusError struct {
	code   int
	status string
}

func (e *statusError) Error() string { return fmt.Sprintf("elasticsearch: %s", e.status) }
