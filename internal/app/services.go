package app

import (
	"fmt"
	"strings"

	"assay/internal/api"
	"assay/internal/catalog"
	"assay/internal/config"
	"assay/internal/docgen"
	"assay/internal/execute"
	"assay/internal/host"
	"assay/internal/research"
	"assay/internal/results"
	"assay/internal/validate"
	"assay/pkg/logging"
)

// Services holds the initialized components used by the application.
// Components communicate through the central API layer once registered;
// this struct only retains the handles needed outside that flow.
//
// Field descriptions:
//   - Storage: shared document storage under the configuration directory
//   - Catalog: kept for shutdown, reads go through api.GetCatalog()
//   - Invoker: the hosting-application connection, nil when no host is configured
//   - ConfigAPI: runtime configuration access through the central API layer
type Services struct {
	Storage   *config.Storage
	Catalog   *catalog.Catalog
	Invoker   host.Invoker
	ConfigAPI api.ConfigAPI
}

// InitializeServices creates all components and registers their adapters
// with the central API layer.
//
// Initialization order matters: the config adapter registers first so every
// later component can read configuration through the API layer, and the
// result store registers before the execution engine that records into it.
func InitializeServices(cfg *Config) (*Services, error) {
	assayCfg := cfg.AssayConfig
	if assayCfg == nil {
		return nil, fmt.Errorf("assay configuration not loaded")
	}

	storage := config.NewStorageWithPath(cfg.ConfigPath)

	invoker := buildInvoker(assayCfg.Host)

	configAdapter := NewConfigAdapter(assayCfg, cfg.ConfigPath)
	configAdapter.Register()

	cat, err := catalog.NewCatalog(storage, assayCfg.Risk, invoker)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog: %w", err)
	}
	if err := cat.Load(); err != nil {
		logging.Warn("Services", "Discovery snapshot unreadable, starting with an empty catalog: %v", err)
	}
	catalog.NewAdapter(cat).Register()

	researchStore := research.NewStore(storage)
	if err := researchStore.Load(); err != nil {
		logging.Warn("Services", "Failed to load research entries: %v", err)
	}
	research.NewAdapter(researchStore).Register()

	validate.NewAdapter(executionContextProvider(assayCfg, invoker)).Register()

	resultStore := results.NewStore(storage)
	if err := resultStore.Load(); err != nil {
		logging.Warn("Services", "Failed to load recorded results: %v", err)
	}
	results.NewAdapter(resultStore).Register()

	// The snapshotter and observer need a workspace root to work in. Without
	// one the engine still runs, it just reports the missing capability.
	var snapshotter execute.Snapshotter
	var observer execute.Observer
	if assayCfg.Workspace != "" {
		snapshotter = execute.NewWorkspaceSnapshotter(assayCfg.Workspace)
		observer = execute.NewFSObserver(assayCfg.Workspace)
	}
	engine := execute.NewEngine(invoker, snapshotter, observer, assayCfg.Execution)
	execute.NewAdapter(engine).Register()

	docgen.NewAdapter(storage, assayCfg.Docs).Register()

	logging.Info("Services", "Initialized components (config: %s, workspace: %s, host: %s)",
		cfg.ConfigPath, assayCfg.Workspace, describeHost(assayCfg.Host))

	return &Services{
		Storage:   storage,
		Catalog:   cat,
		Invoker:   invoker,
		ConfigAPI: api.NewConfigAPI(),
	}, nil
}

// Close releases held resources: the host connection and the search index.
func (s *Services) Close() error {
	var firstErr error
	if s.Invoker != nil {
		if err := s.Invoker.Close(); err != nil {
			firstErr = err
		}
	}
	if s.Catalog != nil {
		if err := s.Catalog.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// buildInvoker constructs the host connection from configuration. A command
// takes precedence over a URL; neither configured yields nil, which leaves
// assay fully usable against local state.
func buildInvoker(hostCfg config.HostConfig) host.Invoker {
	switch {
	case hostCfg.Command != "":
		return host.NewStdioInvoker(hostCfg.Command, hostCfg.Args, envMap(hostCfg.Env))
	case hostCfg.URL != "":
		return host.NewHTTPInvoker(hostCfg.URL, hostCfg.Token)
	default:
		return nil
	}
}

// envMap converts KEY=VALUE pairs into a map. Entries without a key are
// skipped.
func envMap(pairs []string) map[string]string {
	if len(pairs) == 0 {
		return nil
	}
	env := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			continue
		}
		env[key] = value
	}
	return env
}

// executionContextProvider supplies the live execution context for
// precondition checks. Capabilities reflect what this process can actually
// do: talk to a host, snapshot the workspace, observe filesystem changes.
func executionContextProvider(assayCfg *config.AssayConfig, invoker host.Invoker) validate.ContextProvider {
	return func() api.ExecutionContext {
		return api.ExecutionContext{
			WorkspacePath: assayCfg.Workspace,
			Capabilities: map[string]bool{
				"host":      invoker != nil,
				"workspace": assayCfg.Workspace != "",
				"snapshot":  assayCfg.Workspace != "",
				"observer":  assayCfg.Workspace != "",
			},
		}
	}
}

func describeHost(hostCfg config.HostConfig) string {
	switch {
	case hostCfg.Command != "":
		return hostCfg.Command + " (stdio)"
	case hostCfg.URL != "":
		return hostCfg.URL
	default:
		return "none"
	}
}
