package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"webora_backend/internal/database"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// Recherche plein texte des prestations du catalogue. L'index "services"
// est alimenté par le back-office (propriétaire du catalogue), ici on ne
// fait qu'interroger.
func SearchServices(query string) ([]map[string]interface{}, error) {
	if database.Elastic == nil {
		return nil, errors.New("client Elasticsearch non initialisé")
	}

	var buf bytes.Buffer
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name^2", "description", "tags"},
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, err
	}

	req := esapi.SearchRequest{
		Index: []string{"services"},
		Body:  &buf,
	}

	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("erreur Elasticsearch: %s", res.String())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]interface{} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	results := make([]map[string]interface{}, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		results = append(results, hit.Source)
	}
	return results, nil
}
