// Example program demonstrating the magpatch library API.
//
// Run from the repo root against a database directory holding items.json
// and globals.json:
//
//	go run ./example/ ./database
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/MyCarrier-DevOps/go-magpatch/internal/database"
	"github.com/MyCarrier-DevOps/go-magpatch/internal/logging"
	"github.com/MyCarrier-DevOps/go-magpatch/pkg/magpatch"
)

func main() {
	dir := "database"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	db := database.Open(dir)
	result, err := magpatch.Run(context.Background(), magpatch.Options{
		Provider: db,
		Logger:   logging.New(logging.Config{}),
		Explain:  true,
	})
	if err != nil {
		log.Fatalf("patching failed: %v", err)
	}
	if err := db.Save(result.Tables); err != nil {
		log.Fatalf("saving database: %v", err)
	}

	fmt.Print(result.Explanation)
	fmt.Println()
	printVariables(result)
}

func printVariables(result *magpatch.Result) {
	keys := make([]string, 0, len(result.Variables))
	for k := range result.Variables {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Printf("%-32s %s\n", k, result.Variables[k])
	}
}
