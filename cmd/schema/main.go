// Command schema writes the JSON schema of anchor.json to stdout.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/yumosx/anchor/internal/config"
)

func main() {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(config.Schema()); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding schema: %v\n", err)
		os.Exit(1)
	}
}
