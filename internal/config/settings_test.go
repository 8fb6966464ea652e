package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestExtractGuardKey(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    string
	}{
		{
			name:    "exact match without flags",
			command: "/usr/local/bin/velvet-rope run bash-guard",
			want:    "bash-guard",
		},
		{
			name:    "match with --log flag",
			command: "/usr/local/bin/velvet-rope run bash-guard --log",
			want:    "bash-guard",
		},
		{
			name:    "match with log format flags",
			command: "/usr/local/bin/velvet-rope run write-guard --log --log-format pretty",
			want:    "write-guard",
		},
		{
			name:    "match with different executable path",
			command: "/different/path/velvet-rope run write-guard",
			want:    "write-guard",
		},
		{
			name:    "no match - unrelated command",
			command: "/usr/bin/some-other-tool run thing",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractGuardKey(tt.command); got != tt.want {
				t.Errorf("extractGuardKey(%q) = %q, want %q", tt.command, got, tt.want)
			}
		})
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	dir := t.TempDir()
	settings, err := LoadSettings(filepath.Join(dir, "settings.json"))
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if !IsHooksConfigEmpty(settings.Hooks) {
		t.Error("Expected empty hooks config for missing file")
	}
}

func TestSaveSettingsPreservesUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	original := `{
  "permissions": {"allow": ["Bash(ls:*)"]},
  "hooks": {
    "PreToolUse": [
      {"matcher": "Bash", "hooks": [{"type": "command", "command": "other-tool run thing"}]}
    ]
  }
}`
	if err := os.WriteFile(path, []byte(original), 0o600); err != nil {
		t.Fatal(err)
	}

	settings, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}

	AddHookToSettings(settings, "PreToolUse", "Bash", "/bin/velvet-rope run bash-guard", nil)

	if err := SaveSettings(path, settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Saved settings are not valid JSON: %v", err)
	}
	if _, ok := raw["permissions"]; !ok {
		t.Error("Expected unknown 'permissions' field to survive a round-trip")
	}

	reloaded, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if len(reloaded.Hooks.PreToolUse) != 1 {
		t.Fatalf("Expected one PreToolUse matcher, got %d", len(reloaded.Hooks.PreToolUse))
	}
	if len(reloaded.Hooks.PreToolUse[0].Hooks) != 2 {
		t.Errorf("Expected the foreign hook plus ours, got %d entries", len(reloaded.Hooks.PreToolUse[0].Hooks))
	}
}

func TestAddHookToSettingsDuplicate(t *testing.T) {
	settings := &Settings{Other: map[string]interface{}{}}
	command := "/bin/velvet-rope run bash-guard"

	first := AddHookToSettings(settings, "PreToolUse", "Bash", command, nil)
	if first.WasDuplicate {
		t.Error("First add should not be a duplicate")
	}

	second := AddHookToSettings(settings, "PreToolUse", "Bash", command, nil)
	if !second.WasDuplicate {
		t.Error("Second add of the same command should be a duplicate")
	}
	if len(settings.Hooks.PreToolUse[0].Hooks) != 1 {
		t.Errorf("Expected one hook entry, got %d", len(settings.Hooks.PreToolUse[0].Hooks))
	}
}

func TestAddHookToSettingsReplacesSameGuard(t *testing.T) {
	settings := &Settings{Other: map[string]interface{}{}}

	AddHookToSettings(settings, "PreToolUse", "Bash", "/bin/velvet-rope run bash-guard", nil)
	result := AddHookToSettings(settings, "PreToolUse", "Bash", "/bin/velvet-rope run bash-guard --log", nil)

	if !result.WasDuplicate {
		t.Fatal("Expected replacement to be reported as duplicate")
	}
	hooks := settings.Hooks.PreToolUse[0].Hooks
	if len(hooks) != 1 {
		t.Fatalf("Expected one hook entry after replacement, got %d", len(hooks))
	}
	if hooks[0].Command != "/bin/velvet-rope run bash-guard --log" {
		t.Errorf("Expected updated command, got %q", hooks[0].Command)
	}
}

func TestRemoveGuardFromSettings(t *testing.T) {
	settings := &Settings{Other: map[string]interface{}{}}
	AddHookToSettings(settings, "PreToolUse", "Bash", "/bin/velvet-rope run bash-guard", nil)
	AddHookToSettings(settings, "PreToolUse", "Write|Edit", "/bin/velvet-rope run write-guard", nil)
	AddHookToSettings(settings, "PreToolUse", "Bash", "other-tool run thing", nil)

	removed := RemoveGuardFromSettings(settings, "bash-guard")
	if removed != 1 {
		t.Fatalf("Expected 1 removal, got %d", removed)
	}

	// The foreign hook and the other guard stay put.
	total := 0
	for _, m := range settings.Hooks.PreToolUse {
		total += len(m.Hooks)
	}
	if total != 2 {
		t.Errorf("Expected 2 remaining hook entries, got %d", total)
	}
}

func TestRemoveAllVelvetRopeFromSettings(t *testing.T) {
	settings := &Settings{Other: map[string]interface{}{}}
	AddHookToSettings(settings, "PreToolUse", "Bash", "/bin/velvet-rope run bash-guard", nil)
	AddHookToSettings(settings, "PostToolUse", "Write|Edit", "/bin/velvet-rope run write-guard", nil)
	AddHookToSettings(settings, "PreToolUse", "*", "other-tool run thing", nil)

	removed := RemoveAllVelvetRopeFromSettings(settings)
	if removed != 2 {
		t.Fatalf("Expected 2 removals, got %d", removed)
	}
	if len(settings.Hooks.PreToolUse) != 1 || settings.Hooks.PreToolUse[0].Hooks[0].Command != "other-tool run thing" {
		t.Errorf("Expected only the foreign hook to remain, got %+v", settings.Hooks.PreToolUse)
	}
	if len(settings.Hooks.PostToolUse) != 0 {
		t.Errorf("Expected PostToolUse to be emptied, got %+v", settings.Hooks.PostToolUse)
	}
}

func TestIsPluginEnabledSetting(t *testing.T) {
	disabled := false
	settings := &Settings{
		Plugins: map[string]PluginConfig{
			"bash-guard": {Enabled: &disabled},
		},
	}

	if settings.IsPluginEnabled("bash-guard") {
		t.Error("Expected bash-guard to be disabled")
	}
	if !settings.IsPluginEnabled("write-guard") {
		t.Error("Expected unlisted guard to default to enabled")
	}
	var nilSettings *Settings
	if !nilSettings.IsPluginEnabled("bash-guard") {
		t.Error("Expected nil settings to default to enabled")
	}
}
