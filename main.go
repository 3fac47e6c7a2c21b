package main

import (
	"flag"
	"fmt"
	"os"

	"fishdata/internal/di"
	"fishdata/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "path to config file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "duplicate app logs to stderr at debug level")
	flag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %s\n", err)
		os.Exit(1)
	}
}
