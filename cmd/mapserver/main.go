package main

import (
	"log"
	"net/http"
	"os"

	"mapgen/pkg/game/persistence"
	"mapgen/pkg/game/server"
)

func main() {
	var store persistence.Storage
	var err error

	if os.Getenv("MAPGEN_STORE") == "postgres" {
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			dsn = "host=localhost user=mapgen password=mapgen dbname=mapgen sslmode=disable"
		}
		store, err = persistence.NewPostgresStore(dsn)
		log.Println("Using PostgreSQL persistence")
	} else {
		dbFile := os.Getenv("MAPGEN_DB_FILE")
		if dbFile == "" {
			dbFile = "floors.json"
		}
		store, err = persistence.NewJSONStore(dbFile)
		log.Println("Using JSON persistence")
	}
	if err != nil {
		log.Fatalf("Failed to initialize persistence: %v", err)
	}
	defer store.Close()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Map server starting on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, server.New(store).Handler()))
}
