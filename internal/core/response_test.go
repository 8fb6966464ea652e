package core

import (
	"bytes"
	"testing"
)

func TestEmitWarnings(t *testing.T) {
	var buf bytes.Buffer
	orig := Warnings
	Warnings = &buf
	defer func() { Warnings = orig }()

	EmitWarnings([]string{"Warning: first", "Warning: second"})

	want := "Warning: first\nWarning: second\n"
	if buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
}

func TestEmitWarningsEmpty(t *testing.T) {
	var buf bytes.Buffer
	orig := Warnings
	Warnings = &buf
	defer func() { Warnings = orig }()

	EmitWarnings(nil)

	if buf.Len() != 0 {
		t.Errorf("Expected no output for empty warnings, got %q", buf.String())
	}
}

func TestAsk(t *testing.T) {
	if Ask() == nil {
		t.Error("Expected a response from Ask")
	}
}
