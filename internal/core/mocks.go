package core

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/brads3290/cchooks"
)

// MockFileSystem implements FileSystem interface for testing
type MockFileSystem struct {
	Files    map[string][]byte
	Dirs     map[string]bool
	WriteErr error
	OpenErr  error
	StatErr  error
	mu       sync.RWMutex
}

// NewMockFileSystem creates a new mock filesystem for testing
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files: make(map[string][]byte),
		Dirs:  make(map[string]bool),
	}
}

// WriteFile writes data to a mock file in memory
func (m *MockFileSystem) WriteFile(filename string, data []byte, _ os.FileMode) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Dirs[filepath.Dir(filename)] = true
	m.Files[filename] = make([]byte, len(data))
	copy(m.Files[filename], data)
	return nil
}

// OpenFile opens a temporary file standing in for the real one
func (m *MockFileSystem) OpenFile(_ string, _ int, _ os.FileMode) (*os.File, error) {
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	return os.CreateTemp("", "mock_*")
}

// Stat returns file information for the specified path
func (m *MockFileSystem) Stat(name string) (os.FileInfo, error) {
	if m.StatErr != nil {
		return nil, m.StatErr
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, exists := m.Files[name]; exists {
		return &mockFileInfo{name: name, size: int64(len(m.Files[name]))}, nil
	}
	return nil, os.ErrNotExist
}

type mockFileInfo struct {
	name string
	size int64
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() os.FileMode  { return 0o644 }
func (m *mockFileInfo) ModTime() time.Time { return time.Now() }
func (m *mockFileInfo) IsDir() bool        { return false }
func (m *mockFileInfo) Sys() interface{}   { return nil }

// MockRunner mimics cchooks.Runner without reading stdin
type MockRunner struct {
	PreToolUse  func(context.Context, *cchooks.PreToolUseEvent) cchooks.PreToolUseResponseInterface
	PostToolUse func(context.Context, *cchooks.PostToolUseEvent) cchooks.PostToolUseResponseInterface
	RunCalled   bool
}

// Run marks the runner as called
func (m *MockRunner) Run() {
	m.RunCalled = true
}

// MockRunnerFactory creates MockRunner instances so tests never block on
// stdin decoding
func MockRunnerFactory(preHook func(context.Context, *cchooks.PreToolUseEvent) cchooks.PreToolUseResponseInterface,
	postHook func(context.Context, *cchooks.PostToolUseEvent) cchooks.PostToolUseResponseInterface,
) Runner {
	return &MockRunner{
		PreToolUse:  preHook,
		PostToolUse: postHook,
	}
}

// TestHookContext creates a context suitable for testing
func TestHookContext(settingsChecker func(string) bool) *HookContext {
	if settingsChecker == nil {
		settingsChecker = func(string) bool { return true }
	}

	return &HookContext{
		FileSystem:      NewMockFileSystem(),
		RunnerFactory:   MockRunnerFactory,
		SettingsChecker: settingsChecker,
	}
}
