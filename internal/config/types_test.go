package config

import (
	"reflect"
	"testing"
)

func TestParseHostTarget(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   HostConfig
	}{
		{
			name:   "http url",
			target: "http://localhost:9321/mcp",
			want:   HostConfig{URL: "http://localhost:9321/mcp"},
		},
		{
			name:   "https url",
			target: "https://registry.internal/mcp",
			want:   HostConfig{URL: "https://registry.internal/mcp"},
		},
		{
			name:   "bare command",
			target: "myhost",
			want:   HostConfig{Command: "myhost"},
		},
		{
			name:   "command with args",
			target: "node ./host-shim.js --registry",
			want:   HostConfig{Command: "node", Args: []string{"./host-shim.js", "--registry"}},
		},
		{
			name:   "empty target",
			target: "",
			want:   HostConfig{},
		},
		{
			name:   "whitespace only",
			target: "   ",
			want:   HostConfig{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseHostTarget(tt.target)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseHostTarget(%q) = %+v, want %+v", tt.target, got, tt.want)
			}
		})
	}
}
