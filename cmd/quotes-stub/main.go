// A stub of the quote provider API for local testing. Serves a hardcoded
// ZenQuotes-shaped response so the job can run end to end without hitting
// the real provider. Point the job at it with QUOTES_BASE_URL.
package main

import (
	"log"
	"net/http"
	"os"
)

func main() {
	addr := os.Getenv("STUB_ADDR")
	if addr == "" {
		addr = ":8089"
	}

	log.Println("WARNING: This is a STUB quote API for local testing only.")
	log.Printf("Starting quote stub on %s (set QUOTES_BASE_URL=http://localhost%s)", addr, addr)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /today", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"q":"The best way out is always through.","a":"Robert Frost"}]`))
	})

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"quotes-stub"}`))
	})

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("stub server: %v", err)
	}
}
