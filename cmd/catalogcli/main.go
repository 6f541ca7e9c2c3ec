// Command catalogcli is a console catalog browser. It fetches the full item
// list once and filters it locally, the same load-once-then-filter flow the
// catalog pages use, so repeated queries cost no extra round-trips.
package main

import (
	"catalog/domain"
	"catalog/pkg/filter"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sort"
	"time"
)

type itemsEnvelope struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    []domain.Item `json:"data"`
}

func main() {
	addr := flag.String("addr", "http://localhost:8080", "catalog service base URL")
	search := flag.String("search", "", "search term")
	category := flag.String("category", "all", "category filter")
	flag.Parse()

	items, err := fetchItems(*addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalogcli: %v\n", err)
		os.Exit(1)
	}

	matched := filter.Apply(items, *search, *category)

	fmt.Printf("%d of %d items\n\n", len(matched), len(items))
	for _, item := range matched {
		fmt.Printf("%s  [%s]\n", item.Name, item.Category)
		fmt.Printf("    %s\n", item.Description)
		printCustomFields(item.CustomFields)
	}
}

func fetchItems(addr string) ([]domain.Item, error) {
	client := &http.Client{Timeout: 10 * time.Second}

	resp, err := client.Get(addr + "/api/items")
	if err != nil {
		return nil, fmt.Errorf("fetching items: %w", err)
	}
	defer resp.Body.Close()

	var envelope itemsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if !envelope.Success {
		return nil, fmt.Errorf("service error: %s", envelope.Message)
	}

	return envelope.Data, nil
}

func printCustomFields(fields domain.CustomFields) {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Printf("    %s: %s\n", key, fields[key])
	}
}
