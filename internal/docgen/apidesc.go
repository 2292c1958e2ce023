package docgen

import (
	"assay/internal/api"
)

// buildAPIDescription documents the remote invocation protocol served by
// the websocket bridge. Execute examples come from successful results.
func buildAPIDescription(results []api.TestResult, version string) api.APIDescription {
	desc := api.APIDescription{
		Name:      "assay-bridge",
		Version:   version,
		Transport: "websocket",
	}

	desc.Paths = append(desc.Paths, api.APIPath{
		Path:        "/ws",
		Kind:        "connect",
		Description: "Upgrade to a websocket session. The server replies with a listing message carrying every known operation.",
		Responses: []api.APIResponse{
			{Kind: "listing", Description: "All known operations", SchemaRef: "operation"},
		},
	})

	executePath := api.APIPath{
		Path:        "execute",
		Kind:        "message",
		Description: "Run one operation through the safe execution engine. The payload names the command and its arguments; snapshot and confirmation behavior default from server configuration when omitted.",
		Responses: []api.APIResponse{
			{Kind: "result", Description: "The call completed; payload mirrors the execution outcome", SchemaRef: "execution-outcome"},
			{Kind: "error", Description: "The call failed or was refused; payload carries message and kind"},
		},
	}
	if example := executeExample(results); example != nil {
		executePath.Example = example
	}
	desc.Paths = append(desc.Paths, executePath)

	desc.Paths = append(desc.Paths, api.APIPath{
		Path:        "ping",
		Kind:        "message",
		Description: "Liveness check. The server answers with a pong echoing the message id.",
		Responses: []api.APIResponse{
			{Kind: "pong", Description: "Echoes the ping id"},
		},
	})

	return desc
}

// executeExample builds a request example from the first successful result.
func executeExample(results []api.TestResult) interface{} {
	for _, result := range results {
		if !result.Outcome.Success {
			continue
		}
		payload := map[string]interface{}{
			"commandId": result.OperationID,
		}
		if len(result.Args) > 0 {
			payload["parameters"] = result.Args
		}
		return map[string]interface{}{
			"type":    "execute",
			"id":      "req-1",
			"payload": payload,
		}
	}
	return nil
}
