// Package config handles settings.json wiring, the optional rule overlay,
// and log rotation configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/velvetrope/velvet-rope/internal/constants"
)

// HookCommand is one command entry under a matcher in settings.json.
type HookCommand struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	Timeout *int   `json:"timeout,omitempty"`
}

// HookMatcher groups hook commands under a tool matcher pattern.
type HookMatcher struct {
	Matcher string        `json:"matcher,omitempty"`
	Hooks   []HookCommand `json:"hooks"`
}

// HooksConfig mirrors the hooks section of settings.json.
type HooksConfig struct {
	PreToolUse       []HookMatcher `json:"PreToolUse,omitempty"`
	PostToolUse      []HookMatcher `json:"PostToolUse,omitempty"`
	UserPromptSubmit []HookMatcher `json:"UserPromptSubmit,omitempty"`
	Notification     []HookMatcher `json:"Notification,omitempty"`
	Stop             []HookMatcher `json:"Stop,omitempty"`
	SubagentStop     []HookMatcher `json:"SubagentStop,omitempty"`
	PreCompact       []HookMatcher `json:"PreCompact,omitempty"`
	SessionStart     []HookMatcher `json:"SessionStart,omitempty"`
	SessionEnd       []HookMatcher `json:"SessionEnd,omitempty"`
}

// PluginConfig stores per-guard settings. A nil Enabled means default
// (enabled); Enabled=false disables the guard.
type PluginConfig struct {
	Enabled *bool `json:"enabled,omitempty"`
}

// Settings models the parts of settings.json we read and write, preserving
// everything else verbatim in Other.
type Settings struct {
	Hooks   HooksConfig             `json:"hooks,omitempty"`
	Plugins map[string]PluginConfig `json:"plugins,omitempty"`
	Other   map[string]interface{}  `json:"-"`
}

// GetSettingsPath returns the project or global settings.json path.
func GetSettingsPath(global bool) (string, error) {
	if global {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %v", err)
		}
		return filepath.Join(homeDir, constants.ClaudeDir, constants.SettingsFileName), nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %v", err)
	}
	return filepath.Join(cwd, constants.ClaudeDir, constants.SettingsFileName), nil
}

// LoadSettings reads settings.json, returning empty settings if absent.
func LoadSettings(settingsPath string) (*Settings, error) {
	settings := &Settings{
		Other: make(map[string]interface{}),
	}

	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		return settings, nil
	}

	data, err := os.ReadFile(settingsPath) // #nosec G304 - controlled settings paths
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %v", err)
	}

	// Unknown fields are preserved so a round-trip never destroys settings
	// the caller owns.
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse settings JSON: %v", err)
	}
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %v", err)
	}
	delete(raw, "hooks")
	delete(raw, "plugins")
	settings.Other = raw

	if settings.Plugins == nil {
		settings.Plugins = make(map[string]PluginConfig)
	}

	return settings, nil
}

// SaveSettings writes settings.json, merging known fields back over the
// preserved unknown ones.
func SaveSettings(settingsPath string, settings *Settings) error {
	dir := filepath.Dir(settingsPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory: %v", err)
	}

	output := make(map[string]interface{})
	for k, v := range settings.Other {
		output[k] = v
	}
	if !IsHooksConfigEmpty(settings.Hooks) {
		output["hooks"] = settings.Hooks
	}
	if len(settings.Plugins) > 0 {
		output["plugins"] = settings.Plugins
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %v", err)
	}

	if err := os.WriteFile(settingsPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write settings file: %v", err)
	}

	return nil
}

// IsHooksConfigEmpty reports whether no event has any matcher configured.
func IsHooksConfigEmpty(hooks HooksConfig) bool {
	return len(hooks.PreToolUse) == 0 &&
		len(hooks.PostToolUse) == 0 &&
		len(hooks.UserPromptSubmit) == 0 &&
		len(hooks.Notification) == 0 &&
		len(hooks.Stop) == 0 &&
		len(hooks.SubagentStop) == 0 &&
		len(hooks.PreCompact) == 0 &&
		len(hooks.SessionStart) == 0 &&
		len(hooks.SessionEnd) == 0
}

// IsPluginEnabled returns true if the guard is enabled (default) or
// explicitly enabled, false only if explicitly disabled in settings.
func (s *Settings) IsPluginEnabled(key string) bool {
	if s == nil || s.Plugins == nil {
		return true
	}
	cfg, ok := s.Plugins[key]
	if !ok || cfg.Enabled == nil {
		return true
	}
	return *cfg.Enabled
}

// MergeResult represents the result of merging hook matchers
type MergeResult struct {
	Matchers      []HookMatcher
	WasDuplicate  bool
	DuplicateInfo string
}

// AddHookToSettings merges a hook command into the named event section.
func AddHookToSettings(settings *Settings, event, matcher, command string, timeout *int) MergeResult {
	hookCmd := HookCommand{
		Type:    "command",
		Command: command,
		Timeout: timeout,
	}

	hookMatcher := HookMatcher{
		Matcher: matcher,
		Hooks:   []HookCommand{hookCmd},
	}

	var result MergeResult
	switch event {
	case "PreToolUse":
		result = mergeHookMatcher(settings.Hooks.PreToolUse, hookMatcher)
		settings.Hooks.PreToolUse = result.Matchers
	case "PostToolUse":
		result = mergeHookMatcher(settings.Hooks.PostToolUse, hookMatcher)
		settings.Hooks.PostToolUse = result.Matchers
	case "UserPromptSubmit":
		result = mergeHookMatcher(settings.Hooks.UserPromptSubmit, hookMatcher)
		settings.Hooks.UserPromptSubmit = result.Matchers
	case "Notification":
		result = mergeHookMatcher(settings.Hooks.Notification, hookMatcher)
		settings.Hooks.Notification = result.Matchers
	case "Stop":
		result = mergeHookMatcher(settings.Hooks.Stop, hookMatcher)
		settings.Hooks.Stop = result.Matchers
	case "SubagentStop":
		result = mergeHookMatcher(settings.Hooks.SubagentStop, hookMatcher)
		settings.Hooks.SubagentStop = result.Matchers
	case "PreCompact":
		result = mergeHookMatcher(settings.Hooks.PreCompact, hookMatcher)
		settings.Hooks.PreCompact = result.Matchers
	case "SessionStart":
		result = mergeHookMatcher(settings.Hooks.SessionStart, hookMatcher)
		settings.Hooks.SessionStart = result.Matchers
	case "SessionEnd":
		result = mergeHookMatcher(settings.Hooks.SessionEnd, hookMatcher)
		settings.Hooks.SessionEnd = result.Matchers
	}
	return result
}

// guardRunRe extracts the guard key from a velvet-rope command.
// Example: "/usr/local/bin/velvet-rope run bash-guard --log" -> "bash-guard"
var guardRunRe = regexp.MustCompile(constants.BinaryName + `\s+run\s+([\w-]+)`)

func extractGuardKey(command string) string {
	matches := guardRunRe.FindStringSubmatch(command)
	if len(matches) > 1 {
		return matches[1]
	}
	return ""
}

// IsVelvetRopeCommand checks if a settings command entry belongs to us.
func IsVelvetRopeCommand(command string) bool {
	return strings.Contains(command, constants.CommandPattern)
}

func mergeHookMatcher(existing []HookMatcher, incoming HookMatcher) MergeResult {
	for i, matcher := range existing {
		if matcher.Matcher != incoming.Matcher {
			continue
		}
		for j, existingHook := range existing[i].Hooks {
			for _, newHook := range incoming.Hooks {
				if existingHook.Command == newHook.Command {
					return MergeResult{
						Matchers:      existing,
						WasDuplicate:  true,
						DuplicateInfo: fmt.Sprintf("Hook command '%s' already exists for matcher '%s'", newHook.Command, matcher.Matcher),
					}
				}

				// Same guard, different flags: replace rather than stack.
				if IsVelvetRopeCommand(existingHook.Command) && IsVelvetRopeCommand(newHook.Command) {
					existingKey := extractGuardKey(existingHook.Command)
					newKey := extractGuardKey(newHook.Command)
					if existingKey != "" && existingKey == newKey {
						existing[i].Hooks[j] = newHook
						return MergeResult{
							Matchers:      existing,
							WasDuplicate:  true,
							DuplicateInfo: fmt.Sprintf("Replaced existing %s hook with updated command for matcher '%s'", newKey, matcher.Matcher),
						}
					}
				}
			}
		}
		existing[i].Hooks = append(existing[i].Hooks, incoming.Hooks...)
		return MergeResult{Matchers: existing}
	}
	return MergeResult{Matchers: append(existing, incoming)}
}

// RemoveHookFromSettings removes every entry with the exact command from all
// event sections.
func RemoveHookFromSettings(settings *Settings, command string) bool {
	removed := false

	settings.Hooks.PreToolUse = removeHookFromMatchers(settings.Hooks.PreToolUse, command, &removed)
	settings.Hooks.PostToolUse = removeHookFromMatchers(settings.Hooks.PostToolUse, command, &removed)
	settings.Hooks.UserPromptSubmit = removeHookFromMatchers(settings.Hooks.UserPromptSubmit, command, &removed)
	settings.Hooks.Notification = removeHookFromMatchers(settings.Hooks.Notification, command, &removed)
	settings.Hooks.Stop = removeHookFromMatchers(settings.Hooks.Stop, command, &removed)
	settings.Hooks.SubagentStop = removeHookFromMatchers(settings.Hooks.SubagentStop, command, &removed)
	settings.Hooks.PreCompact = removeHookFromMatchers(settings.Hooks.PreCompact, command, &removed)
	settings.Hooks.SessionStart = removeHookFromMatchers(settings.Hooks.SessionStart, command, &removed)
	settings.Hooks.SessionEnd = removeHookFromMatchers(settings.Hooks.SessionEnd, command, &removed)

	return removed
}

func removeHookFromMatchers(matchers []HookMatcher, command string, removed *bool) []HookMatcher {
	var result []HookMatcher

	for _, matcher := range matchers {
		var filteredHooks []HookCommand
		for _, hook := range matcher.Hooks {
			if hook.Command != command {
				filteredHooks = append(filteredHooks, hook)
			} else {
				*removed = true
			}
		}
		if len(filteredHooks) > 0 {
			matcher.Hooks = filteredHooks
			result = append(result, matcher)
		}
	}

	return result
}

// RemoveGuardFromSettings removes every velvet-rope entry for the given
// guard key across all events, returning the number removed.
func RemoveGuardFromSettings(settings *Settings, key string) int {
	removed := 0
	filter := func(matchers []HookMatcher) []HookMatcher {
		var result []HookMatcher
		for _, matcher := range matchers {
			var kept []HookCommand
			for _, hook := range matcher.Hooks {
				if IsVelvetRopeCommand(hook.Command) && extractGuardKey(hook.Command) == key {
					removed++
					continue
				}
				kept = append(kept, hook)
			}
			if len(kept) > 0 {
				matcher.Hooks = kept
				result = append(result, matcher)
			}
		}
		return result
	}

	settings.Hooks.PreToolUse = filter(settings.Hooks.PreToolUse)
	settings.Hooks.PostToolUse = filter(settings.Hooks.PostToolUse)
	settings.Hooks.UserPromptSubmit = filter(settings.Hooks.UserPromptSubmit)
	settings.Hooks.Notification = filter(settings.Hooks.Notification)
	settings.Hooks.Stop = filter(settings.Hooks.Stop)
	settings.Hooks.SubagentStop = filter(settings.Hooks.SubagentStop)
	settings.Hooks.PreCompact = filter(settings.Hooks.PreCompact)
	settings.Hooks.SessionStart = filter(settings.Hooks.SessionStart)
	settings.Hooks.SessionEnd = filter(settings.Hooks.SessionEnd)

	return removed
}

// RemoveAllVelvetRopeFromSettings removes all velvet-rope hooks from
// settings and returns the count removed, preserving unrelated hooks.
func RemoveAllVelvetRopeFromSettings(settings *Settings) int {
	removed := 0
	filter := func(matchers []HookMatcher) []HookMatcher {
		var result []HookMatcher
		for _, matcher := range matchers {
			var kept []HookCommand
			for _, hook := range matcher.Hooks {
				if IsVelvetRopeCommand(hook.Command) {
					removed++
					continue
				}
				kept = append(kept, hook)
			}
			if len(kept) > 0 {
				matcher.Hooks = kept
				result = append(result, matcher)
			}
		}
		return result
	}

	settings.Hooks.PreToolUse = filter(settings.Hooks.PreToolUse)
	settings.Hooks.PostToolUse = filter(settings.Hooks.PostToolUse)
	settings.Hooks.UserPromptSubmit = filter(settings.Hooks.UserPromptSubmit)
	settings.Hooks.Notification = filter(settings.Hooks.Notification)
	settings.Hooks.Stop = filter(settings.Hooks.Stop)
	settings.Hooks.SubagentStop = filter(settings.Hooks.SubagentStop)
	settings.Hooks.PreCompact = filter(settings.Hooks.PreCompact)
	settings.Hooks.SessionStart = filter(settings.Hooks.SessionStart)
	settings.Hooks.SessionEnd = filter(settings.Hooks.SessionEnd)

	return removed
}

// IsPluginEnabled checks (project first, then global) settings to see if a
// guard is enabled. Defaults to enabled if settings cannot be loaded or the
// key is absent.
func IsPluginEnabled(pluginKey string) bool {
	if projectPath, err := GetSettingsPath(false); err == nil {
		if s, err := LoadSettings(projectPath); err == nil {
			if !s.IsPluginEnabled(pluginKey) {
				return false
			}
		}
	}
	if globalPath, err := GetSettingsPath(true); err == nil {
		if s, err := LoadSettings(globalPath); err == nil {
			if !s.IsPluginEnabled(pluginKey) {
				return false
			}
		}
	}
	return true
}
