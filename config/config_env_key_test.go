package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"upstream": map[string]any{
			"baseUrl": "",
			"timeouts": map[string]any{
				"receiptTimeout": "50s",
			},
		},
		"sqlite": map[string]any{
			"path": "",
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "UPSTREAM_BASEURL", want: "upstream.baseUrl"},
		{envKey: "UPSTREAM_TIMEOUTS_RECEIPTTIMEOUT", want: "upstream.timeouts.receiptTimeout"},
		{envKey: "SQLITE_PATH", want: "sqlite.path"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
