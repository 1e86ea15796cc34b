// Package mcp provides an MCP (Model Context Protocol) server for spikenav.
package mcp

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"syscall"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/spikenav/spikenav/internal/snn"
	"github.com/spikenav/spikenav/internal/store"
	"github.com/spikenav/spikenav/internal/training"
)

// Server wraps the MCP SDK server around a spiking network and its store.
// Tool handlers share one Network, so calls are serialized: the simulation
// is a sequential recurrence and must never run concurrently on one
// network instance.
type Server struct {
	server  *sdk.Server
	store   *store.SQLiteStore
	trainer *training.Trainer

	mu sync.Mutex
}

// Config holds server configuration.
type Config struct {
	Name    string // Server name (e.g., "spikenav")
	Version string // Server version
	DataDir string // Data directory (.spikenav)

	Params  snn.Params      // Network parameters
	Trainer training.Config // Trainer parameters
	Seed    int64           // Weight initialization seed when no run exists
}

// NewServer creates an MCP server with spikenav tools. If the store holds
// a completed run, its trained weights are loaded; otherwise the network
// starts from seeded random weights.
func NewServer(cfg *Config) (*Server, error) {
	st, err := store.Open(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	net := snn.NewNetwork(cfg.Params, rand.New(rand.NewSource(cfg.Seed)))
	latest, err := st.LatestRun(context.Background())
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("query latest run: %w", err)
	}
	if latest != nil {
		if err := st.LoadWeights(context.Background(), latest.ID, net); err != nil {
			st.Close()
			return nil, fmt.Errorf("load weights: %w", err)
		}
	}

	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	s := &Server{
		server:  mcpServer,
		store:   st,
		trainer: training.NewTrainer(net, cfg.Trainer),
	}
	s.registerTools()

	return s, nil
}

// registerTools registers all spikenav MCP tools with the server.
func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "snn_predict",
		Description: "Run the spiking network on four sensor distances and return the selected action with per-action spike counts",
	}, s.handlePredict)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "snn_train",
		Description: "Train the network on one labelled sensor sample and return the reward (online adaptation, not persisted until the next training run is saved)",
	}, s.handleTrain)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "snn_stats",
		Description: "List recent training runs with their final reward and held-out accuracy",
	}, s.handleStats)
}

// Run starts the MCP server over stdio transport.
// This blocks until the client disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	err := s.server.Run(ctx, &sdk.StdioTransport{})

	s.store.Close()
	return err
}

// Close closes the server and releases resources.
func (s *Server) Close() error {
	return s.store.Close()
}
