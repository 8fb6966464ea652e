package core

import (
	"fmt"
	"sort"
	"sync"

	"github.com/velvetrope/velvet-rope/internal/config"
)

// HookFactory is a function that creates a Hook instance
type HookFactory func(ctx *HookContext) Hook

// Registry manages guard registration and creation
type Registry struct {
	mu        sync.RWMutex
	factories map[string]HookFactory
	context   *HookContext
}

// NewRegistry creates a new guard registry
func NewRegistry(ctx *HookContext) *Registry {
	if ctx == nil {
		ctx = DefaultHookContext()
	}
	return &Registry{
		factories: make(map[string]HookFactory),
		context:   ctx,
	}
}

// Register registers a guard factory with the given key
func (r *Registry) Register(key string, factory HookFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[key]; exists {
		return fmt.Errorf("guard with key '%s' already registered", key)
	}

	r.factories[key] = factory
	return nil
}

// MustRegister is like Register but panics on error
func (r *Registry) MustRegister(key string, factory HookFactory) {
	if err := r.Register(key, factory); err != nil {
		panic(err)
	}
}

// RegisterBatch registers multiple guards under one write lock
func (r *Registry) RegisterBatch(guards map[string]HookFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range guards {
		if _, exists := r.factories[key]; exists {
			return fmt.Errorf("guard with key '%s' already registered", key)
		}
	}

	for key, factory := range guards {
		r.factories[key] = factory
	}
	return nil
}

// MustRegisterBatch is like RegisterBatch but panics on error
func (r *Registry) MustRegisterBatch(guards map[string]HookFactory) {
	if err := r.RegisterBatch(guards); err != nil {
		panic(err)
	}
}

// Create creates a guard instance by key
func (r *Registry) Create(key string) (Hook, error) {
	r.mu.RLock()
	factory, exists := r.factories[key]
	context := r.context
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("guard with key '%s' not found", key)
	}

	return factory(context), nil
}

// Keys returns all registered guard keys in sorted order
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.factories))
	for k := range r.factories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// List returns a map of all guards (key -> instance)
func (r *Registry) List() map[string]Hook {
	r.mu.RLock()
	factories := make(map[string]HookFactory, len(r.factories))
	for k, v := range r.factories {
		factories[k] = v
	}
	ctx := r.context
	r.mu.RUnlock()

	result := make(map[string]Hook, len(factories))
	for key, factory := range factories {
		result[key] = factory(ctx)
	}
	return result
}

// SetContext updates the context used for creating guard instances
func (r *Registry) SetContext(ctx *HookContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.context = ctx
}

// Global registry instance
var globalRegistry = NewRegistry(nil)

// CreateHook creates a guard instance by key from the global registry
func CreateHook(key string) (Hook, error) {
	return globalRegistry.Create(key)
}

// GetHookKeys returns all registered guard keys from the global registry
func GetHookKeys() []string {
	return globalRegistry.Keys()
}

// ListHooks returns all guards from the global registry
func ListHooks() map[string]Hook {
	return globalRegistry.List()
}

// SetGlobalContext updates the global registry's context
func SetGlobalContext(ctx *HookContext) {
	globalRegistry.SetContext(ctx)
}

// SetGlobalLoggingConfig updates the global registry's context with logging configuration
func SetGlobalLoggingConfig(enabled bool, logDir string, format string) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	if globalRegistry.context != nil {
		globalRegistry.context.LoggingEnabled = enabled
		globalRegistry.context.LoggingDir = logDir
		if config.IsValidLoggingFormat(format) {
			globalRegistry.context.LoggingFormat = format
		}
	}
}

// RegisterBuiltinHooks is called by the hooks package to register all built-in guards
func RegisterBuiltinHooks(guards map[string]HookFactory) {
	globalRegistry.MustRegisterBatch(guards)
}
