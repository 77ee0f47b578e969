package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/rentify/internal/domain/entity"
	"github.com/oksasatya/rentify/internal/domain/repository"
)

const requestTimeout = 3 * time.Second

// ListingIndex keeps a searchable copy of listing text fields in Elasticsearch.
type ListingIndex struct {
	ES        *elasticsearch.Client
	IndexName string
}

func NewListingIndex(es *elasticsearch.Client, index string) *ListingIndex {
	return &ListingIndex{ES: es, IndexName: index}
}

func (s *ListingIndex) Index(ctx context.Context, l *entity.Listing) error {
	doc := map[string]any{
		"id":          l.ID,
		"creator":     l.Creator,
		"title":       l.Title,
		"category":    l.Category,
		"type":        l.Type,
		"city":        l.City,
		"province":    l.Province,
		"country":     l.Country,
		"description": l.Description,
		"amenities":   l.Amenities,
		"price":       l.Price,
		"created_at":  l.CreatedAt.Format(time.RFC3339Nano),
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: s.IndexName, DocumentID: l.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

func (s *ListingIndex) Remove(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: s.IndexName, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

// Search runs a multi_match over title, category and location fields and returns listing ids by score.
func (s *ListingIndex) Search(ctx context.Context, term string, size int) ([]string, error) {
	if size <= 0 || size > 100 {
		size = 50
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     term,
				"fields":    []string{"title^3", "category^2", "city", "province", "country", "description"},
				"fuzziness": "AUTO",
			},
		},
		"_source": false,
		"size":    size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.IndexName),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
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

	out := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.ID)
	}
	return out, nil
}

var _ repository.ListingIndex = (*ListingIndex)(nil)
