package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"havenstay/services/availability"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestQuoteCommand(t *testing.T) {
	out, err := run(t, "quote", "--rate", "120", "--fee", "85", "--check-in", "2099-03-15", "--check-out", "2099-03-20")
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	var view availability.QuoteView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if view.Nights != 5 || view.GrandTotal != "685.00" {
		t.Fatalf("unexpected quote %+v", view)
	}
}

func TestQuoteCommandRejects(t *testing.T) {
	tests := [][]string{
		{"quote", "--rate", "abc"},
		{"quote", "--rate", "120", "--check-in", "2099-03-20", "--check-out", "2099-03-15"},
		{"quote", "--rate", "120", "--guests", "6", "--max-guests", "4"},
	}
	for _, args := range tests {
		if _, err := run(t, args...); err == nil {
			t.Errorf("%s: expected an error", strings.Join(args, " "))
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	if err != nil || !strings.HasPrefix(out, "havenctl dev") {
		t.Fatalf("unexpected version output %q (%v)", out, err)
	}
}
