package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"
)

var baseURL = flag.String("addr", "http://localhost:8080", "Order tally service base URL")

var client = &http.Client{Timeout: 10 * time.Second}

func main() {
	flag.Parse()

	// Create a product
	var product struct {
		ID string `json:"id"`
	}
	call(http.MethodPost, "/api/v1/products", map[string]string{"name": fmt.Sprintf("Mango %d", time.Now().Unix()), "price": "120"}, &product)
	fmt.Printf("Created product: %s\n", product.ID)

	// Add customer entries
	var entry struct {
		ID string `json:"id"`
	}
	for _, data := range []string{"Alice, House 4, Dhaka", "Bob, Road 12, Sylhet"} {
		call(http.MethodPost, "/api/v1/products/"+product.ID+"/entries", map[string]string{"data": data}, &entry)
		fmt.Printf("Added entry: %s\n", entry.ID)
	}

	// Move the last entry along the workflow
	call(http.MethodPut, "/api/v1/products/"+product.ID+"/entries/"+entry.ID+"/state", map[string]string{"state": "Ready"}, nil)
	fmt.Println("Marked entry ready")

	fmt.Println("\n✅ Test data created successfully!")
	fmt.Println("Now test the endpoints:")
	fmt.Printf("  curl '%s/api/v1/events'\n", *baseURL)
	fmt.Printf("  curl -OJ '%s/api/v1/products/%s/entries/%s/invoice'\n", *baseURL, product.ID, entry.ID)
}

func call(method, path string, body, out any) {
	payload, err := json.Marshal(body)
	if err != nil {
		log.Fatalf("Failed to encode request: %v", err)
	}
	req, err := http.NewRequest(method, *baseURL+path, bytes.NewReader(payload))
	if err != nil {
		log.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&e)
		log.Fatalf("%s %s: %s: %s", method, path, resp.Status, e.Error)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			log.Fatalf("Failed to decode response: %v", err)
		}
	}
}
