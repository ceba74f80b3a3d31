// Command productstub runs a minimal stand-in for the remote product
// service, useful for local development of the orders service. It answers
// validate_products requests from a fixed catalogue.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
)

type product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type validateRequest struct {
	Cmd     string  `json:"cmd"`
	Payload []int64 `json:"payload"`
}

var catalogue = map[int64]product{
	1: {ID: 1, Name: "Keyboard", Price: 49.99},
	2: {ID: 2, Name: "Mouse", Price: 19.99},
	3: {ID: 3, Name: "Monitor", Price: 199.00},
	4: {ID: 4, Name: "Headset", Price: 89.50},
	5: {ID: 5, Name: "Webcam", Price: 59.00},
}

func main() {
	addr := ":3001"
	if v := os.Getenv("PRODUCT_STUB_ADDR"); v != "" {
		addr = v
	}

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		var req validateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Cmd != "validate_products" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		matched := make([]product, 0, len(req.Payload))
		for _, id := range req.Payload {
			if p, ok := catalogue[id]; ok {
				matched = append(matched, p)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(matched)
	})

	fmt.Printf("product stub listening on %s\n", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
