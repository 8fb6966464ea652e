package config

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/velvetrope/velvet-rope/internal/constants"
	"github.com/velvetrope/velvet-rope/internal/rules"
	yaml "gopkg.in/yaml.v3"
)

// ruleEntry is one pattern row in guard-rules.yml.
type ruleEntry struct {
	Pattern string `yaml:"pattern"`
	Exclude string `yaml:"exclude,omitempty"`
	Message string `yaml:"message"`
}

// secretEntry is one extra secret shape in guard-rules.yml.
type secretEntry struct {
	Pattern string `yaml:"pattern"`
	Name    string `yaml:"name"`
}

// guardRulesFile is the root structure of guard-rules.yml.
type guardRulesFile struct {
	Bash struct {
		Blocked  []ruleEntry `yaml:"blocked,omitempty"`
		Warnings []ruleEntry `yaml:"warnings,omitempty"`
		Safe     []string    `yaml:"safe,omitempty"`
	} `yaml:"bash,omitempty"`
	Write struct {
		Secrets []secretEntry `yaml:"secrets,omitempty"`
	} `yaml:"write,omitempty"`
}

// GuardExtras bundles the overlay rules for both guards.
type GuardExtras struct {
	Command *rules.CommandExtras
	Secrets rules.SecretExtras
}

// candidateRulesPaths returns possible guard-rules.yml locations in priority
// order. The first file that exists wins; project scope shadows global.
func candidateRulesPaths() []string {
	var paths []string

	if cwd, err := os.Getwd(); err == nil {
		proj := filepath.Join(cwd, constants.ClaudeDir, constants.HooksSubDir)
		paths = append(paths,
			filepath.Join(proj, constants.RulesFileName),
			filepath.Join(proj, "guard-rules.yaml"),
		)
	}

	if home, err := os.UserHomeDir(); err == nil {
		glob := filepath.Join(home, constants.ClaudeDir, constants.HooksSubDir)
		paths = append(paths,
			filepath.Join(glob, constants.RulesFileName),
			filepath.Join(glob, "guard-rules.yaml"),
		)
	}

	return paths
}

// LoadGuardExtras reads the optional guard-rules.yml overlay. A missing or
// unparsable file yields no extras; the built-in tables always apply. Rows
// with invalid regex syntax are skipped rather than failing the whole load,
// since a guard that refuses to start is worse than one missing an overlay
// rule.
func LoadGuardExtras() GuardExtras {
	for _, path := range candidateRulesPaths() {
		data, err := os.ReadFile(path) // #nosec G304 - controlled config paths
		if err != nil {
			continue
		}
		return parseGuardExtras(data)
	}
	return GuardExtras{}
}

func parseGuardExtras(data []byte) GuardExtras {
	var file guardRulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return GuardExtras{}
	}

	var extras GuardExtras
	cmd := &rules.CommandExtras{}

	for _, e := range file.Bash.Blocked {
		if r, ok := compileRule(e); ok {
			cmd.Blocked = append(cmd.Blocked, r)
		}
	}
	for _, e := range file.Bash.Warnings {
		if r, ok := compileRule(e); ok {
			cmd.Warnings = append(cmd.Warnings, r)
		}
	}
	for _, s := range file.Bash.Safe {
		if p, err := regexp.Compile(s); err == nil {
			cmd.Safe = append(cmd.Safe, p)
		}
	}
	if len(cmd.Blocked) > 0 || len(cmd.Warnings) > 0 || len(cmd.Safe) > 0 {
		extras.Command = cmd
	}

	for _, e := range file.Write.Secrets {
		if e.Name == "" {
			continue
		}
		if p, err := regexp.Compile(e.Pattern); err == nil {
			extras.Secrets = append(extras.Secrets, rules.NewSecretExtra(p, e.Name))
		}
	}

	return extras
}

func compileRule(e ruleEntry) (rules.Rule, bool) {
	if e.Message == "" {
		return rules.Rule{}, false
	}
	p, err := regexp.Compile(e.Pattern)
	if err != nil {
		return rules.Rule{}, false
	}
	r := rules.Rule{Pattern: p, Message: e.Message}
	if e.Exclude != "" {
		ex, err := regexp.Compile(e.Exclude)
		if err != nil {
			return rules.Rule{}, false
		}
		r.Exclude = ex
	}
	return r, true
}
