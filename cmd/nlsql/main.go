// Package main provides the entry point for the nlsql server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	mcpserver "github.com/gallerydesk/nlsql/internal/server"
	"github.com/gallerydesk/nlsql/pkg/platform"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath  string
	query       string
	showVersion bool
}

func parseFlags() options {
	opts := options{}
	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.query, "query", "", "Generate SQL for one question and exit")
	flag.BoolVar(&opts.showVersion, "version", false, "Show version and exit")
	flag.Parse()
	return opts
}

func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx
}

func run() error {
	opts := parseFlags()

	if opts.showVersion {
		fmt.Printf("nlsql version %s\n", mcpserver.Version)
		return nil
	}

	server, p, err := createServer(opts)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	if opts.query != "" {
		return oneShot(p, opts.query)
	}

	ctx := setupSignalHandler()
	return server.Run(ctx, &mcp.StdioTransport{})
}

func createServer(opts options) (*mcp.Server, *platform.Platform, error) {
	if opts.configPath != "" {
		return mcpserver.NewWithConfig(opts.configPath)
	}
	return mcpserver.NewWithDefaults()
}

// oneShot prints the generation result for a single question as JSON.
func oneShot(p *platform.Platform, question string) error {
	res := p.Generator().GenerateQuery(question)
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Println(string(data))
	if !res.Success {
		return fmt.Errorf("query generation failed: %s", res.Error)
	}
	return nil
}
