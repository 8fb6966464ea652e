// Package core provides the fundamental hook system interfaces, base
// implementations, and execution context.
package core

import (
	"context"
	"os"

	"github.com/brads3290/cchooks"
	"github.com/velvetrope/velvet-rope/internal/config"
)

// Hook defines the interface that all guard implementations must satisfy
type Hook interface {
	// Key returns the unique identifier for this guard
	Key() string
	// Name returns the human-readable name for this guard
	Name() string
	// Description returns a description of what this guard does
	Description() string
	// Run executes the guard and returns any error
	Run() error
	// IsEnabled checks if this guard is enabled in the current context
	IsEnabled() bool
}

// BaseHook provides common functionality for all guards
type BaseHook struct {
	key         string
	name        string
	description string
	context     *HookContext
}

// Key returns the hook key
func (h *BaseHook) Key() string {
	return h.key
}

// Name returns the hook name
func (h *BaseHook) Name() string {
	return h.name
}

// Description returns the hook description
func (h *BaseHook) Description() string {
	return h.description
}

// IsEnabled checks if the hook is enabled by consulting settings
func (h *BaseHook) IsEnabled() bool {
	return h.context.SettingsChecker(h.key)
}

// Context returns the hook context
func (h *BaseHook) Context() *HookContext {
	return h.context
}

// NewBaseHook creates a new BaseHook with the given metadata
func NewBaseHook(key, name, description string, ctx *HookContext) *BaseHook {
	if ctx == nil {
		ctx = DefaultHookContext()
	}
	return &BaseHook{
		key:         key,
		name:        name,
		description: description,
		context:     ctx,
	}
}

// FileSystem interface for dependency injection in testing
type FileSystem interface {
	WriteFile(filename string, data []byte, perm os.FileMode) error
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
	Stat(name string) (os.FileInfo, error)
}

// RealFileSystem implements FileSystem using the real filesystem
type RealFileSystem struct{}

// WriteFile writes data to a file with the specified permissions
func (fs *RealFileSystem) WriteFile(filename string, data []byte, perm os.FileMode) error {
	return os.WriteFile(filename, data, perm)
}

// OpenFile opens a file with the specified flags and permissions
func (fs *RealFileSystem) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm) // #nosec G304 - filesystem interface, paths controlled by caller
}

// Stat returns file information for the specified path
func (fs *RealFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// Runner interface allows for mocking in tests
type Runner interface {
	Run()
}

// RunnerFactory creates a Runner with the provided handlers
type RunnerFactory func(preHook func(context.Context, *cchooks.PreToolUseEvent) cchooks.PreToolUseResponseInterface,
	postHook func(context.Context, *cchooks.PostToolUseEvent) cchooks.PostToolUseResponseInterface) Runner

// DefaultRunnerFactory creates a standard cchooks.Runner
func DefaultRunnerFactory(preHook func(context.Context, *cchooks.PreToolUseEvent) cchooks.PreToolUseResponseInterface,
	postHook func(context.Context, *cchooks.PostToolUseEvent) cchooks.PostToolUseResponseInterface,
) Runner {
	runner := &cchooks.Runner{}
	if preHook != nil {
		runner.PreToolUse = preHook
	}
	if postHook != nil {
		runner.PostToolUse = postHook
	}
	return runner
}

// HookContext provides dependencies that guards may need
type HookContext struct {
	FileSystem      FileSystem
	RunnerFactory   RunnerFactory
	SettingsChecker func(string) bool
	LoggingEnabled  bool
	LoggingDir      string
	LoggingFormat   string
}

// DefaultHookContext returns a context with real implementations
func DefaultHookContext() *HookContext {
	return &HookContext{
		FileSystem:      &RealFileSystem{},
		RunnerFactory:   DefaultRunnerFactory,
		SettingsChecker: defaultIsPluginEnabled,
		LoggingEnabled:  false,
		LoggingDir:      ".claude/hooks",
		LoggingFormat:   config.LoggingFormatJSONL,
	}
}

// defaultIsPluginEnabled is the default implementation - always returns true.
// The main package swaps in the settings-backed checker when registering.
func defaultIsPluginEnabled(_ string) bool {
	return true
}

// StandardRun executes the hook with the provided handlers.
// Concrete guards call this in their Run() method.
func (h *BaseHook) StandardRun(
	preHandler func(context.Context, *cchooks.PreToolUseEvent) cchooks.PreToolUseResponseInterface,
	postHandler func(context.Context, *cchooks.PostToolUseEvent) cchooks.PostToolUseResponseInterface,
) error {
	if !h.IsEnabled() {
		return nil
	}

	runner := h.Context().RunnerFactory(preHandler, postHandler)
	runner.Run()
	return nil
}

// LogHookEvent delegates to the shared logging utility (see logging.go)
func (h *BaseHook) LogHookEvent(event string, toolName string, rawData map[string]interface{}, details map[string]interface{}) {
	if !h.context.LoggingEnabled {
		return
	}
	logHookEvent(h.context, h.key, event, toolName, rawData, details)
}

// LogError logs a standard error event
func (h *BaseHook) LogError(eventType, toolName string, err error) {
	if h.Context().LoggingEnabled {
		h.LogHookEvent(eventType, toolName, map[string]interface{}{"error": err.Error()}, nil)
	}
}

// LogApproval logs a standard approval event
func (h *BaseHook) LogApproval(eventType, toolName string, details map[string]interface{}) {
	if h.Context().LoggingEnabled {
		h.LogHookEvent(eventType, toolName, details, nil)
	}
}

// LogBlock logs a standard block event
func (h *BaseHook) LogBlock(eventType, toolName string, details map[string]interface{}) {
	if h.Context().LoggingEnabled {
		h.LogHookEvent(eventType, toolName, details, nil)
	}
}
