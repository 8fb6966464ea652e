package config

import (
	"testing"

	"github.com/velvetrope/velvet-rope/internal/rules"
)

func TestParseGuardExtras(t *testing.T) {
	data := []byte(`
bash:
  blocked:
    - pattern: '\bterraform\s+destroy\b'
      message: "Blocked: terraform destroy"
  warnings:
    - pattern: '\bterraform\s+apply\b'
      exclude: '--auto-approve'
      message: "Warning: review the plan first"
  safe:
    - '^terraform plan\b'
write:
  secrets:
    - pattern: 'corp_tok_[a-z0-9]{16}'
      name: "Corp internal token"
`)

	extras := parseGuardExtras(data)

	if extras.Command == nil {
		t.Fatal("Expected command extras to be populated")
	}
	if len(extras.Command.Blocked) != 1 || len(extras.Command.Warnings) != 1 || len(extras.Command.Safe) != 1 {
		t.Fatalf("Unexpected extras shape: %+v", extras.Command)
	}
	if len(extras.Secrets) != 1 {
		t.Fatalf("Expected one secret extra, got %d", len(extras.Secrets))
	}

	result := rules.EvalCommand("terraform destroy -auto-approve", extras.Command)
	if result.Verdict != rules.CommandBlock {
		t.Errorf("Expected overlay block to fire, got %+v", result)
	}

	// The exclude vetoes the warning.
	result = rules.EvalCommand("terraform apply --auto-approve", extras.Command)
	if len(result.Warnings) != 0 {
		t.Errorf("Expected exclude to suppress warning, got %v", result.Warnings)
	}
}

func TestParseGuardExtrasSkipsInvalidRows(t *testing.T) {
	data := []byte(`
bash:
  blocked:
    - pattern: '([unclosed'
      message: "bad regex"
    - pattern: '\bvalid\b'
      message: "Blocked: valid"
    - pattern: '\bmissing-message\b'
  safe:
    - '([also unclosed'
`)

	extras := parseGuardExtras(data)

	if extras.Command == nil {
		t.Fatal("Expected command extras despite invalid rows")
	}
	if len(extras.Command.Blocked) != 1 {
		t.Errorf("Expected only the valid row to compile, got %d", len(extras.Command.Blocked))
	}
	if len(extras.Command.Safe) != 0 {
		t.Errorf("Expected invalid safe pattern to be skipped, got %d", len(extras.Command.Safe))
	}
}

func TestParseGuardExtrasMalformedYAML(t *testing.T) {
	extras := parseGuardExtras([]byte("bash: [not: valid: yaml"))

	if extras.Command != nil || len(extras.Secrets) != 0 {
		t.Errorf("Expected no extras for malformed file, got %+v", extras)
	}
}
