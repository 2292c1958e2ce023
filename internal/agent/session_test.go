package agent

import (
	"context"
	"errors"
	"testing"

	"assay/internal/api"
)

func TestSessionRefreshOperations(t *testing.T) {
	provider := &fakeProvider{
		results: map[string]*api.CallToolResult{
			"assay_operation_list": operationListResult(
				api.Operation{ID: "fs.read", Category: "filesystem", RiskLevel: api.RiskSafe},
				api.Operation{ID: "fs.remove", Category: "filesystem", RiskLevel: api.RiskDestructive},
			),
		},
	}
	session := NewSession(provider, NewDevNullLogger())

	if err := session.RefreshOperations(context.Background()); err != nil {
		t.Fatalf("RefreshOperations returned error: %v", err)
	}

	operations := session.Operations()
	if len(operations) != 2 {
		t.Fatalf("cached %d operations, want 2", len(operations))
	}
	if operations[0].ID != "fs.read" {
		t.Errorf("first operation = %q, want fs.read", operations[0].ID)
	}
	if operations[1].RiskLevel != api.RiskDestructive {
		t.Errorf("second operation risk = %q, want destructive", operations[1].RiskLevel)
	}
}

func TestSessionRefreshOperationsErrorResult(t *testing.T) {
	provider := &fakeProvider{
		results: map[string]*api.CallToolResult{
			"assay_operation_list": {
				Content: []interface{}{"catalog not registered"},
				IsError: true,
			},
		},
	}
	session := NewSession(provider, NewDevNullLogger())

	err := session.RefreshOperations(context.Background())
	if err == nil {
		t.Fatal("RefreshOperations did not return error for error result")
	}
	if got := err.Error(); got != "failed to list operations: catalog not registered" {
		t.Errorf("error = %q", got)
	}
}

func TestSessionRefreshOperationsTransportError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("provider gone")}
	session := NewSession(provider, NewDevNullLogger())

	if err := session.RefreshOperations(context.Background()); err == nil {
		t.Fatal("RefreshOperations did not return transport error")
	}
}

func TestSessionOperationsReturnsCopy(t *testing.T) {
	provider := &fakeProvider{
		results: map[string]*api.CallToolResult{
			"assay_operation_list": operationListResult(api.Operation{ID: "fs.read"}),
		},
	}
	session := NewSession(provider, NewDevNullLogger())

	if err := session.RefreshOperations(context.Background()); err != nil {
		t.Fatalf("RefreshOperations returned error: %v", err)
	}

	operations := session.Operations()
	operations[0].ID = "mutated"

	if session.Operations()[0].ID != "fs.read" {
		t.Error("mutating the returned slice changed the cache")
	}
}

func TestSessionCallToolDefaultsNilArgs(t *testing.T) {
	provider := &fakeProvider{}
	session := NewSession(provider, NewDevNullLogger())

	if _, err := session.CallTool(context.Background(), "assay_result_list", nil); err != nil {
		t.Fatalf("CallTool returned error: %v", err)
	}

	if provider.lastArgs == nil {
		t.Error("nil args were not replaced with an empty map")
	}
}

func TestSessionGetFormatters(t *testing.T) {
	session := NewSession(&fakeProvider{}, NewDevNullLogger())

	if session.GetFormatters() == nil {
		t.Fatal("GetFormatters returned nil")
	}
}
