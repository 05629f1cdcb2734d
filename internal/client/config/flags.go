package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// Only -a, -t and -i are picked out of os.Args so that -c/-config, handled by
// parseJson, does not trip the flag set.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
