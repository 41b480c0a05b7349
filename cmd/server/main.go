// Command server runs the mentorship matching API: user accounts, mentorship
// requests, meeting scheduling, and the reminder dispatcher.
package main

import (
	"log"
	"os"
)

func main() {
	app, err := newApplication()
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	app.taskRunner.Start()

	router := app.setupRouter()

	if err := app.startHTTPServer(router); err != nil {
		app.logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}
