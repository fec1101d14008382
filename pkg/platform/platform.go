package platform

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gallerydesk/nlsql/pkg/generator"
	"github.com/gallerydesk/nlsql/pkg/schema"
)

// Platform owns the generator and the MCP server exposing it.
type Platform struct {
	config    *Config
	log       *slog.Logger
	generator *generator.Generator
	mcpServer *mcp.Server
}

// New builds a platform from the given config: it initializes the
// generator with the configured schema and registers all tools.
func New(cfg *Config) (*Platform, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	log := newLogger(cfg.Server.LogLevel)

	gen := generator.New(log)
	schemaText, err := cfg.SchemaText(schema.DefaultDescription)
	if err != nil {
		return nil, fmt.Errorf("resolving schema: %w", err)
	}
	if _, err := gen.Initialize(schemaText); err != nil {
		return nil, fmt.Errorf("initializing generator: %w", err)
	}
	if len(cfg.Suggestions) > 0 {
		gen.SetCustomSuggestions(cfg.Suggestions)
	}

	p := &Platform{
		config:    cfg,
		log:       log,
		generator: gen,
		mcpServer: mcp.NewServer(&mcp.Implementation{
			Name:    cfg.Server.Name,
			Version: cfg.Server.Version,
		}, nil),
	}
	p.registerTools()

	return p, nil
}

// newLogger builds a text slog logger on stderr, leaving stdout free for
// the stdio transport.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// Generator exposes the underlying generator, mainly for the one-shot CLI
// path and tests.
func (p *Platform) Generator() *generator.Generator {
	return p.generator
}

// MCPServer exposes the configured MCP server.
func (p *Platform) MCPServer() *mcp.Server {
	return p.mcpServer
}

// Config returns the active configuration.
func (p *Platform) Config() *Config {
	return p.config
}
