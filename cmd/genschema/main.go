// Command genschema writes the JSON schema of bookadmin.toml.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/nlimbasiya24/bookadmin/internal/config"
)

func main() {
	out := flag.String("o", "bookadmin.schema.json", "output file, - for stdout")
	flag.Parse()

	data, err := json.MarshalIndent(config.Schema(), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode schema: %v\n", err)
		os.Exit(1)
	}
	data = append(data, '\n')

	if *out == "-" {
		_, _ = os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", *out, err)
		os.Exit(1)
	}
}
