package host

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/bbq-beach/agents/pkg/a2a"
)

// Connection pairs a resolved agent card with the client used to reach
// the agent. One connection exists per registered remote agent and it
// lives for the lifetime of the registry.
type Connection struct {
	Card   *a2a.AgentCard
	URL    string
	Client *a2a.Client
}

// AgentInfo is the summary of one registered agent, as presented to
// the UI and to error messages.
type AgentInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Examples    []string `json:"examples"`
	URL         string   `json:"url"`
}

// Registry resolves remote agent addresses to connections keyed by the
// exact card name.
type Registry struct {
	mu          sync.RWMutex
	connections map[string]*Connection
	logger      *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		connections: make(map[string]*Connection),
		logger:      logger.With(zap.String("component", "registry")),
	}
}

// Register fetches the agent card of every address and records a
// connection for each one that answers. An unreachable address is
// logged and skipped; agents already registered stay usable and no
// result is returned.
func (r *Registry) Register(ctx context.Context, addresses []string) {
	for _, address := range addresses {
		resolver := a2a.NewAgentCardResolver(address, nil)
		card, err := resolver.GetWellKnownAgentCard(ctx)
		if err != nil {
			r.logger.Error("failed to fetch agent card",
				zap.String("address", address),
				zap.Error(err))
			continue
		}

		client, err := a2a.NewClient(address, nil)
		if err != nil {
			r.logger.Error("failed to create client",
				zap.String("address", address),
				zap.Error(err))
			continue
		}

		r.mu.Lock()
		r.connections[card.Name] = &Connection{
			Card:   card,
			URL:    address,
			Client: client,
		}
		r.mu.Unlock()

		r.logger.Info("registered remote agent",
			zap.String("agent", card.Name),
			zap.String("address", address))
	}
}

// Lookup returns the connection for an agent by exact name match.
func (r *Registry) Lookup(name string) (*Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.connections[name]
	return conn, ok
}

// Names returns the sorted names of all registered agents.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.connections))
	for name := range r.connections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns a summary of every registered agent, sorted by name.
func (r *Registry) List() []AgentInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]AgentInfo, 0, len(r.connections))
	for _, conn := range r.connections {
		info := AgentInfo{
			Name:     conn.Card.Name,
			URL:      conn.URL,
			Examples: conn.Card.Examples,
		}
		if conn.Card.Description != nil {
			info.Description = *conn.Card.Description
		}
		for _, skill := range conn.Card.Skills {
			if skill.Description != nil {
				info.Skills = append(info.Skills, *skill.Description)
			}
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}
