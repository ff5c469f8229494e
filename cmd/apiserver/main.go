// Command apiserver starts the HTTP surface exposing circuit execution
// as a service.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kegliz/feynmansim/internal/config"
	"github.com/kegliz/feynmansim/internal/server"
)

func main() {
	configFile := flag.String("config", "", "path to an optional YAML config file")
	localOnly := flag.Bool("local-only", false, "bind to 127.0.0.1 instead of all interfaces")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "loading config:", err)
		os.Exit(1)
	}

	s := server.NewServer(cfg)
	if err := s.Listen(cfg.Port, *localOnly); err != nil {
		fmt.Fprintln(os.Stderr, "server error:", err)
		os.Exit(1)
	}
}
