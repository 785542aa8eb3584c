package main

import (
	"flag"
	"fmt"
	"os"

	"untisd/internal/di"
	"untisd/internal/structures"
)

func main() {
	flags := parseFlags()

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "untisd: %s\n", err)
		os.Exit(1)
	}
}

func parseFlags() *structures.CliFlags {
	flags := &structures.CliFlags{}

	flag.StringVar(&flags.ConfigPath, "config", "/etc/untisd/config.yaml", "Path to config file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "Enable debug mode")
	flag.Parse()

	return flags
}
