package constants

// Application constants - single source of truth for naming throughout the codebase
const (
	// Core application identity
	AppName        = "Velvet Rope"
	BinaryName     = "velvet-rope"
	ProjectTagline = "Nobody runs without a nod"

	// Module and repository
	ModulePath    = "github.com/velvetrope/velvet-rope"
	RepositoryURL = "https://github.com/velvetrope/velvet-rope"

	// Configuration files
	ConfigFileName   = "velvet-rope-config.json"
	SettingsFileName = "settings.json"
	RulesFileName    = "guard-rules.yml"

	// Directory paths
	ClaudeDir   = ".claude"
	HooksSubDir = "hooks"

	// Command pattern used to recognize our own entries in settings
	CommandPattern = BinaryName + " run"
)

// Tool names as they appear in hook events
const (
	ToolBash  = "Bash"
	ToolWrite = "Write"
	ToolEdit  = "Edit"
)

// GetConfigPath returns the full config file path
func GetConfigPath(baseDir string) string {
	return baseDir + "/" + ClaudeDir + "/" + HooksSubDir + "/" + ConfigFileName
}
