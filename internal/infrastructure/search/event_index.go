package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/BrianKimathi/event-booking-api/internal/domain/entity"
)

// EventDoc is the Elasticsearch document projected from an event.
// Only published events are indexed.
type EventDoc struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Venue       string    `json:"venue"`
	Category    string    `json:"category"`
	StartDate   time.Time `json:"start_date"`
	ImageURL    string    `json:"image_url,omitempty"`
}

// EventIndex wraps the Elasticsearch client for event search.
type EventIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewEventIndex(es *elasticsearch.Client, index string) *EventIndex {
	return &EventIndex{es: es, index: index}
}

// Index upserts the event document. Called when an event is published
// or an indexed field changes afterwards.
func (x *EventIndex) Index(ctx context.Context, e *entity.Event) error {
	doc := EventDoc{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Venue:       e.Venue,
		Category:    e.Category,
		StartDate:   e.StartDate,
		ImageURL:    e.ImageURL,
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      x.index,
		DocumentID: strconv.FormatInt(e.ID, 10),
		Body:       bytes.NewReader(body),
		Refresh:    "false",
	}
	res, err := req.Do(ctx, x.es)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index event %d: %s", e.ID, res.Status())
	}
	return nil
}

// Remove deletes the event document, e.g. on cancellation. A missing
// document is not an error.
func (x *EventIndex) Remove(ctx context.Context, eventID int64) error {
	req := esapi.DeleteRequest{
		Index:      x.index,
		DocumentID: strconv.FormatInt(eventID, 10),
	}
	res, err := req.Do(ctx, x.es)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete event %d: %s", eventID, res.Status())
	}
	return nil
}

// Search runs a multi_match over title, description, venue and
// category, boosted toward titles.
func (x *EventIndex) Search(ctx context.Context, query string, size int) ([]EventDoc, error) {
	if size <= 0 {
		size = 20
	}
	q := map[string]any{
		"size": size,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"title^3", "description", "venue^2", "category"},
			},
		},
	}
	body, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}

	res, err := x.es.Search(
		x.es.Search.WithContext(ctx),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search events: %s", res.Status())
	}

	var out struct {
		Hits struct {
			Hits []struct {
				Source EventDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}

	docs := make([]EventDoc, 0, len(out.Hits.Hits))
	for _, h := range out.Hits.Hits {
		docs = append(docs, h.Source)
	}
	return docs, nil
}
