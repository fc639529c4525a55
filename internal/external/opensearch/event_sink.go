package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/opensearch-project/opensearch-go"

	"sealog-webhooks/internal/domain/subscription"
)

var _ subscription.EventSearcher = (*EventSink)(nil)

// EventSink mirrors processed subscription events into OpenSearch for the
// filtered events query. Postgres stays the source of truth; indexing here
// is best effort.
type EventSink struct {
	client *opensearch.Client
	index  string
}

func NewEventSink(ctx context.Context, urls []string, index string) (*EventSink, error) {
	if len(urls) == 0 {
		return nil, errors.New("no OpenSearch addresses configured")
	}

	cfg := opensearch.Config{
		Addresses: urls,
		Transport: &http.Transport{
			MaxIdleConnsPerHost: 10,
		},
	}
	client, err := opensearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("opensearch client: %w", err)
	}

	sink := &EventSink{client: client, index: index}

	if err := sink.ensureIndex(ctx); err != nil {
		return nil, err
	}
	return sink, nil
}

func (s *EventSink) ensureIndex(ctx context.Context) error {
	res, err := s.client.Indices.Exists([]string{s.index}, s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("indices.exists: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil // already exists
	}

	body := map[string]any{
		"mappings": map[string]any{
			"properties": map[string]any{
				"event_id":          map[string]any{"type": "keyword"},
				"user_id":           map[string]any{"type": "long"},
				"kind":              map[string]any{"type": "keyword"},
				"provider_event_id": map[string]any{"type": "keyword"},
				"created_at":        map[string]any{"type": "date"},
				"data":              map[string]any{"type": "object", "enabled": true},
			},
		},
		"settings": map[string]any{
			"number_of_replicas": 0, // dev-friendly; change in prod
		},
	}
	buf, _ := json.Marshal(body)
	cr, err := s.client.Indices.Create(
		s.index,
		s.client.Indices.Create.WithBody(bytes.NewReader(buf)),
		s.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("indices.create: %w", err)
	}
	defer cr.Body.Close()
	if cr.IsError() {
		return fmt.Errorf("indices.create error: %s", cr.String())
	}
	return nil
}

// internal doc stored in OpenSearch
type osEventDoc struct {
	EventID         string                 `json:"event_id"`
	UserID          int64                  `json:"user_id"`
	Kind            subscription.EventKind `json:"kind"`
	ProviderEventID string                 `json:"provider_event_id,omitempty"`
	Data            json.RawMessage        `json:"data,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}

// IndexEvent stores the event under the provider event ID, so a replayed
// delivery overwrites its own document instead of duplicating it.
func (s *EventSink) IndexEvent(ctx context.Context, ev subscription.Event) error {
	doc := osEventDoc{
		EventID:         ev.EventID,
		UserID:          ev.UserID,
		Kind:            ev.Kind,
		ProviderEventID: ev.ProviderEventID,
		Data:            ev.Data,
		CreatedAt:       ev.CreatedAt.UTC(),
	}
	payload, _ := json.Marshal(doc)
	res, err := s.client.Index(
		s.index,
		bytes.NewReader(payload),
		s.client.Index.WithDocumentID(ev.ProviderEventID),
		s.client.Index.WithContext(ctx),
		// In dev you can force refresh so reads see writes immediately. Remove for prod perf.
		s.client.Index.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index error: %s", res.String())
	}
	return nil
}

func (s *EventSink) SearchEvents(ctx context.Context, query subscription.EventQuery) ([]subscription.Event, error) {
	filters := make([]map[string]any, 0, 3)
	if len(query.UserIDs) > 0 {
		vals := make([]string, 0, len(query.UserIDs))
		for _, id := range query.UserIDs {
			vals = append(vals, strconv.FormatInt(id, 10))
		}
		filters = append(filters, map[string]any{
			"terms": map[string]any{"user_id": vals},
		})
	}
	if len(query.Kinds) > 0 {
		vals := make([]string, 0, len(query.Kinds))
		for _, k := range query.Kinds {
			if k != "" {
				vals = append(vals, string(k))
			}
		}
		if len(vals) > 0 {
			filters = append(filters, map[string]any{
				"terms": map[string]any{"kind": vals},
			})
		}
	}
	if query.TimeFrom != nil || query.TimeTo != nil {
		rangeQuery := map[string]any{}
		if query.TimeFrom != nil {
			rangeQuery["gte"] = query.TimeFrom.UTC().Format(time.RFC3339)
		}
		if query.TimeTo != nil {
			rangeQuery["lte"] = query.TimeTo.UTC().Format(time.RFC3339)
		}
		filters = append(filters, map[string]any{
			"range": map[string]any{"created_at": rangeQuery},
		})
	}

	size := query.Limit
	if size <= 0 {
		size = 50
	}
	order := "desc"
	if query.SortAsc {
		order = "asc"
	}

	body := map[string]any{
		"size": size,
		"query": map[string]any{
			"bool": map[string]any{
				"filter": filters,
			},
		},
		"sort": []map[string]any{
			{"created_at": map[string]any{"order": order}},
		},
	}
	raw, _ := json.Marshal(body)

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(raw)),
	)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search error: %s", res.String())
	}

	var sr struct {
		Hits struct {
			Hits []struct {
				ID     string          `json:"_id"`
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode search: %w", err)
	}

	out := make([]subscription.Event, 0, len(sr.Hits.Hits))
	for _, h := range sr.Hits.Hits {
		var doc osEventDoc
		if err := json.Unmarshal(h.Source, &doc); err != nil {
			return nil, fmt.Errorf("decode hit: %w", err)
		}
		eventID := doc.EventID
		if eventID == "" {
			eventID = h.ID
		}
		out = append(out, subscription.Event{
			EventID: eventID,
			NewEvent: subscription.NewEvent{
				UserID:          doc.UserID,
				Kind:            doc.Kind,
				ProviderEventID: doc.ProviderEventID,
				Data:            doc.Data,
				CreatedAt:       doc.CreatedAt,
			},
		})
	}
	return out, nil
}
