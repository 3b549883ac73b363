package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	pkglogger "github.com/evigdia/evigdia-backend/pkg/logger"
)

// PostIndex is the index holding published blog posts
const PostIndex = "evigdia-posts"

// Client wraps the Elasticsearch client with convenience methods
type Client struct {
	es *elasticsearch.Client
}

// NewClient creates a new Elasticsearch client and verifies connectivity
func NewClient(addresses []string, username, password string) (*Client, error) {
	cfg := elasticsearch.Config{
		Addresses: addresses,
	}
	if username != "" {
		cfg.Username = username
		cfg.Password = password
	}

	es, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client creation failed: %w", err)
	}

	res, err := es.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch connection failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch info failed: %s", res.String())
	}

	return &Client{es: es}, nil
}

// PostDocument is the searchable projection of a blog post
type PostDocument struct {
	ID      uint64 `json:"id"`
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
	Content string `json:"content"`
}

// IndexPost upserts a post document
func (c *Client) IndexPost(ctx context.Context, doc *PostDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      PostIndex,
		DocumentID: fmt.Sprintf("%d", doc.ID),
		Body:       bytes.NewReader(body),
		Refresh:    "false",
	}
	res, err := req.Do(ctx, c.es)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index post %d failed: %s", doc.ID, res.String())
	}
	return nil
}

// DeletePost removes a post document; missing documents are not an error
func (c *Client) DeletePost(ctx context.Context, postID uint64) error {
	req := esapi.DeleteRequest{
		Index:      PostIndex,
		DocumentID: fmt.Sprintf("%d", postID),
	}
	res, err := req.Do(ctx, c.es)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete post %d failed: %s", postID, res.String())
	}
	return nil
}

// SearchPosts runs a multi-field match query and returns matching post IDs
func (c *Client) SearchPosts(ctx context.Context, keyword string, limit int) ([]uint64, int64, error) {
	if limit <= 0 {
		limit = 20
	}

	query := map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  keyword,
				"fields": []string{"title^3", "excerpt^2", "content"},
			},
		},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, 0, err
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(PostIndex),
		c.es.Search.WithBody(strings.NewReader(string(body))),
	)
	if err != nil {
		return nil, 0, err
	}
	defer res.Body.Close()
	if res.IsError() {
		raw, _ := io.ReadAll(res.Body)
		pkglogger.GetLogger().Warn().Str("response", string(raw)).Msg("elasticsearch search error")
		return nil, 0, fmt.Errorf("search failed: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source PostDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, 0, err
	}

	ids := make([]uint64, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		ids = append(ids, hit.Source.ID)
	}
	return ids, parsed.Hits.Total.Value, nil
}
