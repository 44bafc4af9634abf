package repository

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/fekuna/storefront-service/internal/model"
	"github.com/fekuna/storefront-service/internal/product/dto"
	"github.com/fekuna/storefront-service/pkg/search"
)

const (
	productIndex = "products"
	// maxSearchHits caps a single search response; the listing is not paginated.
	maxSearchHits = 1000
)

// Field names follow the JSON form of model.Product, which is what gets indexed.
// The raw keyword subfields back the substring search; descriptions longer
// than ignore_above are not searchable.
const productMapping = `{
	"mappings": {
		"properties": {
			"id":          { "type": "keyword" },
			"name":        { "type": "text", "fields": { "raw": { "type": "keyword", "ignore_above": 1024 } } },
			"description": { "type": "text", "fields": { "raw": { "type": "keyword", "ignore_above": 8191 } } },
			"category":    { "type": "text", "fields": { "raw": { "type": "keyword" } } },
			"price":       { "type": "double" },
			"stock":       { "type": "integer" },
			"featured":    { "type": "boolean" },
			"active":      { "type": "boolean" },
			"createdAt":   { "type": "date" }
		}
	}
}`

type ESIndex struct {
	client *search.Client
	index  string
}

func NewESIndex(client *search.Client) *ESIndex {
	return &ESIndex{client: client, index: productIndex}
}

func (i *ESIndex) EnsureIndex(ctx context.Context) error {
	return errors.Wrap(i.client.CreateIndex(ctx, i.index, productMapping), "product.ESIndex.EnsureIndex")
}

func (i *ESIndex) IndexProduct(ctx context.Context, p *model.Product) error {
	return errors.Wrap(i.client.Index(ctx, i.index, p.ID, p), "product.ESIndex.IndexProduct")
}

func (i *ESIndex) DeleteProduct(ctx context.Context, id string) error {
	return errors.Wrap(i.client.Delete(ctx, i.index, id), "product.ESIndex.DeleteProduct")
}

func (i *ESIndex) SearchProducts(ctx context.Context, f *dto.ProductFilters) ([]model.Product, error) {
	res, err := i.client.Search(ctx, i.index, buildSearchQuery(f))
	if err != nil {
		return nil, errors.Wrap(err, "product.ESIndex.SearchProducts")
	}

	products := make([]model.Product, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var p model.Product
		if err := json.Unmarshal(hit.Source, &p); err != nil {
			return nil, errors.Wrapf(err, "decode product %s", hit.ID)
		}
		products = append(products, p)
	}
	return products, nil
}

func buildSearchQuery(f *dto.ProductFilters) map[string]interface{} {
	filter := []map[string]interface{}{
		{"term": map[string]interface{}{"active": true}},
	}
	if f.Category != "" {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"category.raw": f.Category},
		})
	}
	if f.FeaturedOnly {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"featured": true},
		})
	}

	// The whole phrase is one case-insensitive substring, the same match the
	// database stores apply.
	pattern := "*" + escapeWildcard(f.Search) + "*"
	should := make([]map[string]interface{}, 0, 3)
	for _, field := range []string{"name.raw", "description.raw", "category.raw"} {
		should = append(should, map[string]interface{}{
			"wildcard": map[string]interface{}{
				field: map[string]interface{}{
					"value":            pattern,
					"case_insensitive": true,
				},
			},
		})
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"should":               should,
				"minimum_should_match": 1,
				"filter":               filter,
			},
		},
		"sort": []map[string]interface{}{
			{"createdAt": map[string]interface{}{"order": "desc"}},
		},
		"size": maxSearchHits,
	}
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

// escapeWildcard makes * and ? in user input match literally.
func escapeWildcard(s string) string {
	return wildcardEscaper.Replace(s)
}
