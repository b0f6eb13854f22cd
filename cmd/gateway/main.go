// Command gateway runs the payment platform API gateway: a cached,
// traced HTTP facade over the card, merchant, topup, transaction,
// transfer and withdraw gRPC services.
package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "gateway: %v\n", err)
		os.Exit(1)
	}
}
