// manager.go: Backend provider management for AES hardware capabilities.
//
// This module provides a plugin-based architecture powered by
// github.com/agilira/go-plugins for integrating different AES peripheral
// providers: on-chip accelerators exposed by board-support packages,
// out-of-process bridges to remote or emulated hardware, and the built-in
// software fallback. The engine itself only ever sees the Backend
// interface; providers own discovery, initialization and health.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hwaes

import (
	"context"
	"fmt"
	"sync"
	"time"

	goerrors "github.com/agilira/go-errors"
	goplugins "github.com/agilira/go-plugins"
	"github.com/agilira/go-timecache"
)

// BackendProvider is implemented by every AES peripheral provider.
//
// Providers should initialize lazily where possible and report ill health
// rather than blocking; the manager checks IsHealthy before handing a
// provider's backend to callers.
type BackendProvider interface {
	// Name returns the provider name (e.g. "soft", "mmio", "plugin").
	Name() string

	// Version returns the provider version.
	Version() string

	// Initialize prepares the provider (maps registers, connects the
	// plugin, ...). Called once by the manager at registration.
	Initialize(ctx context.Context, config map[string]interface{}) error

	// Close releases provider resources. The manager calls it during
	// shutdown; backends obtained earlier must not be used afterwards.
	Close() error

	// IsHealthy reports whether the provider can currently serve a backend.
	IsHealthy() bool

	// OpenBackend returns the register-level backend for this provider.
	OpenBackend() (Backend, error)
}

// BlockRequest is the wire format for a block operation forwarded to an
// out-of-process backend plugin.
type BlockRequest struct {
	Operation string   `json:"operation"`       // "block"
	Mode      uint32   `json:"mode"`            // mode register word
	Key       []uint32 `json:"key,omitempty"`   // key register words
	Input     []uint32 `json:"input,omitempty"` // text register words
}

// BlockResponse is the reply for a forwarded block operation.
type BlockResponse struct {
	Success bool     `json:"success"`
	Output  []uint32 `json:"output,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// BackendManagerConfig provides configuration for the backend manager.
type BackendManagerConfig struct {
	DefaultProvider  string                            `json:"default_provider"`  // provider handed out when no name is given
	ProviderConfigs  map[string]map[string]interface{} `json:"provider_configs"`  // per-provider configurations
	OperationTimeout time.Duration                     `json:"operation_timeout"` // initialization timeout
}

// Common backend management errors with proper error codes for auditing
var (
	ErrProviderNotFound  = goerrors.New("HWAES_001", "backend provider not found")
	ErrProviderUnhealthy = goerrors.New("HWAES_002", "backend provider failed health check")
	ErrProviderNil       = goerrors.New("HWAES_003", "backend provider cannot be nil")
)

type registeredProvider struct {
	provider     BackendProvider
	registeredAt time.Time
}

// BackendManager manages AES peripheral providers, using the go-plugins
// framework for out-of-process providers alongside an in-process registry.
type BackendManager struct {
	mu              sync.RWMutex
	pluginManager   *goplugins.Manager[BlockRequest, BlockResponse] // plugin manager for out-of-process providers
	providers       map[string]*registeredProvider
	defaultProvider string
	config          *BackendManagerConfig
}

// NewBackendManager creates a backend manager. pluginManager may be nil
// when only in-process providers are used.
func NewBackendManager(config *BackendManagerConfig, pluginManager *goplugins.Manager[BlockRequest, BlockResponse]) *BackendManager {
	if config == nil {
		config = &BackendManagerConfig{
			OperationTimeout: 10 * time.Second,
		}
	}

	return &BackendManager{
		pluginManager: pluginManager,
		providers:     make(map[string]*registeredProvider),
		config:        config,
	}
}

// RegisterProvider initializes and registers a provider under its name.
// The first registered provider, or the configured default, becomes the
// provider returned for an empty name.
func (m *BackendManager) RegisterProvider(name string, provider BackendProvider) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if provider == nil {
		return fmt.Errorf("%w", ErrProviderNil)
	}

	ctx := context.Background()
	if timeout := m.config.OperationTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := provider.Initialize(ctx, m.config.ProviderConfigs[name]); err != nil {
		return fmt.Errorf("failed to initialize backend provider %s: %w", name, err)
	}

	m.providers[name] = &registeredProvider{
		provider:     provider,
		registeredAt: timecache.CachedTime(),
	}

	if m.defaultProvider == "" || m.config.DefaultProvider == name {
		m.defaultProvider = name
	}

	return nil
}

// GetProvider returns a registered provider by name, or the default
// provider for an empty name. Unhealthy providers are not handed out.
func (m *BackendManager) GetProvider(name string) (BackendProvider, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if name == "" {
		name = m.defaultProvider
	}

	reg, exists := m.providers[name]
	if !exists {
		return nil, fmt.Errorf("%w: provider %s", ErrProviderNotFound, name)
	}

	if !reg.provider.IsHealthy() {
		return nil, fmt.Errorf("%w: provider %s", ErrProviderUnhealthy, name)
	}

	return reg.provider, nil
}

// RegisteredAt returns the registration time of a provider, or the zero
// time if it is unknown.
func (m *BackendManager) RegisteredAt(name string) time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if reg, exists := m.providers[name]; exists {
		return reg.registeredAt
	}
	return time.Time{}
}

// NewEngine resolves a provider, opens its backend and builds an engine
// over it. An empty name selects the default provider.
func (m *BackendManager) NewEngine(name string) (*Engine, error) {
	provider, err := m.GetProvider(name)
	if err != nil {
		return nil, err
	}

	backend, err := provider.OpenBackend()
	if err != nil {
		return nil, fmt.Errorf("failed to open backend from provider %s: %w", provider.Name(), err)
	}

	return NewEngine(backend)
}

// Close shuts down all registered providers.
func (m *BackendManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for name, reg := range m.providers {
		if err := reg.provider.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close backend provider %s: %w", name, err))
		}
	}
	m.providers = make(map[string]*registeredProvider)

	if len(errs) > 0 {
		return fmt.Errorf("failed to close some backend providers: %v", errs)
	}
	return nil
}

// SoftProvider is the built-in software fallback provider over crypto/aes.
// It is always healthy once initialized.
type SoftProvider struct {
	mu     sync.Mutex
	closed bool
}

// NewSoftProvider creates the software fallback provider.
func NewSoftProvider() *SoftProvider {
	return &SoftProvider{}
}

// Name returns "soft".
func (p *SoftProvider) Name() string { return "soft" }

// Version returns the provider version.
func (p *SoftProvider) Version() string { return "1.0.0" }

// Initialize is a no-op for the software provider.
func (p *SoftProvider) Initialize(_ context.Context, _ map[string]interface{}) error {
	return nil
}

// Close marks the provider closed.
func (p *SoftProvider) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}

// IsHealthy reports true until Close is called.
func (p *SoftProvider) IsHealthy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.closed
}

// OpenBackend returns a fresh software backend.
func (p *SoftProvider) OpenBackend() (Backend, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		richErr := goerrors.New(ErrCodeBackendClosed, "soft provider already closed")
		return nil, fmt.Errorf("%w: %w", ErrBackendClosed, richErr)
	}
	return NewSoftBackend(), nil
}
