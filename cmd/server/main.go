// Package main implements the entry point for the task API server: user
// registration and login, plus JWT-protected, owner-scoped task CRUD with
// filtered, searched, paginated listing.
package main

import (
	"context"
	"log"
)

func main() {
	app, err := newApplication()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	router := app.setupRouter()

	if err := app.startHTTPServer(context.Background(), router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
