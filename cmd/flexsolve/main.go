// FlexSolve command-line entry point.
//
// Usage:
//
//	flexsolve chat                       # interactive support session
//	flexsolve chat --config config.yaml  # with a config file
//	flexsolve version                    # show version information
//
// The chat command runs a terminal session: user messages are routed to the
// built-in domain-agent catalog, and the operator acts as the human expert
// when a proposal reaches review.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/doitintl/flexsolve/config"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		runChat(nil)
		return
	}

	switch os.Args[1] {
	case "chat":
		runChat(os.Args[2:])
	case "version":
		printVersion()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runChat(args []string) {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	fs.Parse(args)

	loader := config.NewLoader()
	if *configPath != "" {
		loader = loader.WithConfigPath(*configPath)
	}
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.BuildLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cli := newCLI(cfg, logger, prometheus.NewRegistry())
	if err := cli.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Session failed: %v\n", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("FlexSolve %s\n", Version)
	fmt.Printf("  Build Time: %s\n", BuildTime)
	fmt.Printf("  Git Commit: %s\n", GitCommit)
}

func printUsage() {
	fmt.Println(`FlexSolve - AWS support assistant

Usage:
  flexsolve <command> [options]

Commands:
  chat      Start an interactive support session (default)
  version   Show version information
  help      Show this help message

Options for 'chat':
  --config <path>   Path to configuration file (YAML)

Examples:
  flexsolve chat
  flexsolve chat --config /etc/flexsolve/config.yaml
  flexsolve version`)
}
