// seed_products.go — standalone script to load product fixtures from a JSON
// file and seed them via the admin API.
//
// Usage:
//
//	go run scripts/seed_products.go -file products.json -api http://localhost:8700 -token $ERIDEHERO_ADMIN_TOKEN
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
)

type product struct {
	Slug     string         `json:"slug"`
	Name     string         `json:"name"`
	Category string         `json:"category"`
	Price    float64        `json:"price"`
	Specs    map[string]any `json:"specs"`
}

func main() {
	filePath := flag.String("file", "products.json", "path to product fixtures")
	apiURL := flag.String("api", "http://localhost:8700", "API base URL")
	token := flag.String("token", "", "admin bearer token")
	dryRun := flag.Bool("dry-run", false, "print products without posting")
	flag.Parse()

	data, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("read fixtures: %v", err)
	}

	var products []product
	if err := json.Unmarshal(data, &products); err != nil {
		log.Fatalf("parse fixtures: %v", err)
	}

	log.Printf("parsed %d products from %s", len(products), *filePath)

	if *dryRun {
		for i, p := range products {
			fmt.Printf("[%d] %s (category=%s, price=%.2f, specs=%d)\n", i+1, p.Slug, p.Category, p.Price, len(p.Specs))
		}
		return
	}

	client := &http.Client{}
	created, skipped := 0, 0
	for _, p := range products {
		body, _ := json.Marshal(p)
		req, err := http.NewRequest("POST", *apiURL+"/api/v1/products", bytes.NewReader(body))
		if err != nil {
			log.Printf("skip %q: %v", p.Slug, err)
			skipped++
			continue
		}
		req.Header.Set("Content-Type", "application/json")
		if *token != "" {
			req.Header.Set("Authorization", "Bearer "+*token)
		}

		resp, err := client.Do(req)
		if err != nil {
			log.Printf("skip %q: %v", p.Slug, err)
			skipped++
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusCreated {
			created++
		} else {
			log.Printf("skip %q: status %d", p.Slug, resp.StatusCode)
			skipped++
		}
	}

	log.Printf("done: %d created, %d skipped", created, skipped)
}
