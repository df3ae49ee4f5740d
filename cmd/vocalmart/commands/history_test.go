// ABOUTME: Tests for history command structure
// ABOUTME: Verifies argument handling and delete flag

package commands

import (
	"strings"
	"testing"
)

func TestNewHistoryCmd(t *testing.T) {
	cmd := NewHistoryCmd()

	if !strings.HasPrefix(cmd.Use, "history") {
		t.Errorf("Use = %q, want prefix %q", cmd.Use, "history")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if cmd.RunE == nil {
		t.Error("RunE should be set")
	}
}

func TestHistoryCmd_DeleteFlag(t *testing.T) {
	cmd := NewHistoryCmd()

	flag := cmd.Flags().Lookup("delete")
	if flag == nil {
		t.Fatal("--delete flag not found")
	}

	if flag.DefValue != "false" {
		t.Errorf("--delete default = %q, want %q", flag.DefValue, "false")
	}
}

func TestHistoryCmd_RejectsExtraArgs(t *testing.T) {
	cmd := NewHistoryCmd()
	cmd.SetArgs([]string{"one", "two"})

	if err := cmd.Execute(); err == nil {
		t.Error("Expected error for more than one argument")
	}
}
