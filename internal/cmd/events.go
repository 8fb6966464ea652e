package cmd

// EventType represents a Claude Code hook event
type EventType string

// Claude Code hook event types
const (
	EventPreToolUse       EventType = "PreToolUse"
	EventPostToolUse      EventType = "PostToolUse"
	EventUserPromptSubmit EventType = "UserPromptSubmit"
	EventNotification     EventType = "Notification"
	EventStop             EventType = "Stop"
	EventSubagentStop     EventType = "SubagentStop"
	EventPreCompact       EventType = "PreCompact"
	EventSessionStart     EventType = "SessionStart"
	EventSessionEnd       EventType = "SessionEnd"
)

// ClaudeCodeEvent represents a Claude Code hook event type with metadata
type ClaudeCodeEvent struct {
	Type               EventType
	Name               string
	Description        string
	SupportedByCCHooks bool
}

// AllEvents returns the catalogue of Claude Code hook events
func AllEvents() []ClaudeCodeEvent {
	return []ClaudeCodeEvent{
		{EventPreToolUse, "PreToolUse", "Runs before a tool call; can block or approve it", true},
		{EventPostToolUse, "PostToolUse", "Runs after a tool call completes", true},
		{EventUserPromptSubmit, "UserPromptSubmit", "Runs when the user submits a prompt", false},
		{EventNotification, "Notification", "Runs when Claude Code sends a notification", false},
		{EventStop, "Stop", "Runs when the main agent finishes responding", false},
		{EventSubagentStop, "SubagentStop", "Runs when a subagent finishes", false},
		{EventPreCompact, "PreCompact", "Runs before conversation compaction", false},
		{EventSessionStart, "SessionStart", "Runs when a session starts", false},
		{EventSessionEnd, "SessionEnd", "Runs when a session ends", false},
	}
}

// ValidEventTypes returns the names of all events
func ValidEventTypes() []string {
	events := AllEvents()
	names := make([]string, 0, len(events))
	for _, e := range events {
		names = append(names, e.Name)
	}
	return names
}

// IsValidEventType reports whether name is a known event
func IsValidEventType(name string) bool {
	for _, e := range AllEvents() {
		if e.Name == name {
			return true
		}
	}
	return false
}
