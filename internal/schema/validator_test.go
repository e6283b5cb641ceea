package schema

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestValidateSynthesisPayload_Valid(t *testing.T) {
	payload := json.RawMessage(`{
		"groupTitle":"Port strike enters second week",
		"summary":"Dock workers extended their strike after talks collapsed.",
		"detailedComparison":"Outlet A stresses economic impact, outlet B labor conditions.",
		"simpleComparison":"Coverage splits between economy and labor framing.",
		"differences":["A cites port authority figures","B interviews union leaders"]
	}`)

	parsed, err := ValidateSynthesisPayload(payload)
	if err != nil {
		t.Fatalf("expected payload to be valid, got error: %v", err)
	}
	if parsed.GroupTitle != "Port strike enters second week" {
		t.Fatalf("unexpected groupTitle: %q", parsed.GroupTitle)
	}
	if len(parsed.Differences) != 2 {
		t.Fatalf("expected 2 differences, got %d", len(parsed.Differences))
	}
}

func TestValidateSynthesisPayload_MissingSummary(t *testing.T) {
	payload := json.RawMessage(`{"groupTitle":"Headline only"}`)

	_, err := ValidateSynthesisPayload(payload)
	if err == nil {
		t.Fatalf("expected validation to fail for missing summary")
	}
}

func TestValidateSynthesisPayload_BlankSummary(t *testing.T) {
	payload := json.RawMessage(`{"groupTitle":"Headline","summary":"   "}`)

	_, err := ValidateSynthesisPayload(payload)
	if err == nil {
		t.Fatalf("expected validation to fail for whitespace-only summary")
	}
	if !strings.Contains(err.Error(), "summary must not be blank") {
		t.Fatalf("expected summary semantic error, got: %v", err)
	}
}

func TestValidateSynthesisPayload_WrongTypes(t *testing.T) {
	payload := json.RawMessage(`{"groupTitle":42,"summary":"ok"}`)

	_, err := ValidateSynthesisPayload(payload)
	if err == nil {
		t.Fatalf("expected validation to fail for non-string groupTitle")
	}
}

func TestValidateSynthesisPayload_TrailingContent(t *testing.T) {
	payload := json.RawMessage(`{"groupTitle":"A","summary":"B"} trailing prose`)

	_, err := ValidateSynthesisPayload(payload)
	if err == nil {
		t.Fatalf("expected validation to fail for trailing content")
	}
}

func TestValidateSynthesisPayload_Empty(t *testing.T) {
	_, err := ValidateSynthesisPayload(json.RawMessage("  "))
	if err == nil {
		t.Fatalf("expected validation to fail for empty payload")
	}
}

func TestValidateSynthesisPayload_ExtraFieldsTolerated(t *testing.T) {
	payload := json.RawMessage(`{"groupTitle":"A headline","summary":"Something happened.","confidence":0.9}`)

	parsed, err := ValidateSynthesisPayload(payload)
	if err != nil {
		t.Fatalf("expected unknown fields to be tolerated, got: %v", err)
	}
	if parsed.Summary != "Something happened." {
		t.Fatalf("unexpected summary: %q", parsed.Summary)
	}
}
