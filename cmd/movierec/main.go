// Command movierec serves content-based movie recommendations.
//
// Usage:
//
//	movierec [flags] <command> [args]
//
// Commands:
//
//	serve      - run the HTTP API
//	recommend  - print movies similar to a title
//	search     - find movies by title substring
//	chat       - interactive terminal chat
//	config     - write or show configuration
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"movierec/cmd/movierec/commands"
)

func main() {
	_ = godotenv.Load()

	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
