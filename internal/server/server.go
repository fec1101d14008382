// Package server provides a factory for creating the MCP server.
package server

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gallerydesk/nlsql/pkg/platform"
)

// Version is set at build time.
var Version = "dev"

// NewWithConfig creates the server from a configuration file.
func NewWithConfig(configPath string) (*mcp.Server, *platform.Platform, error) {
	cfg, err := platform.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	return build(cfg)
}

// NewWithDefaults creates the server with the built-in gallery schema.
func NewWithDefaults() (*mcp.Server, *platform.Platform, error) {
	return build(platform.DefaultConfig())
}

func build(cfg *platform.Config) (*mcp.Server, *platform.Platform, error) {
	if cfg.Server.Version == "" || cfg.Server.Version == "1.0.0" {
		cfg.Server.Version = Version
	}
	p, err := platform.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return p.MCPServer(), p, nil
}
