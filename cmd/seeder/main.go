// Seeder writes a scenario JSON file that the API server can load via
// SCENARIO_PATH. It emits the built-in default fixture; edit the output
// to build custom worlds.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/punchamoorthee/paypeer/internal/scenario"
	"github.com/shopspring/decimal"
)

func main() {
	out := flag.String("out", "scenario.json", "Output path for the scenario file")
	flag.Parse()

	decimal.MarshalJSONWithoutQuotes = true

	file, err := os.Create(*out)
	if err != nil {
		log.Fatalf("Unable to create %s: %v", *out, err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(scenario.Default()); err != nil {
		log.Fatalf("Unable to write scenario: %v", err)
	}
	log.Printf("Wrote default scenario to %s", *out)
}
