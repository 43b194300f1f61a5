package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gophkms/internal/flagx"
)

// parseFlags overlays cfg with -a, -i and -t. It panics on malformed values.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-i", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port of the key broker")
	checkInterval := fs.Int("i", 0, "online check interval (in seconds)")
	timeout := fs.Int("t", 0, "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -i and -t apply only when given.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*checkInterval) * time.Second
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
