package config

import "testing"

func TestResolveAPIBase(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want string
	}{
		{"default", Config{}, "http://localhost:5000/api"},
		{"host only", Config{APIHost: "192.168.1.20"}, "http://192.168.1.20:5000/api"},
		{"explicit base", Config{APIBase: "https://sentiment.example.com/api"}, "https://sentiment.example.com/api"},
		{"base wins over host", Config{APIBase: "https://sentiment.example.com/api", APIHost: "192.168.1.20"}, "https://sentiment.example.com/api"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cfg.ResolveAPIBase(); got != tc.want {
				t.Fatalf("ResolveAPIBase() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("TWEETSENSE_API_HOST", "10.0.0.5")
	t.Setenv("TWEETSENSE_API_BASE", "")
	t.Setenv("TWEETSENSE_EXPORT_DIR", "/tmp/exports")

	cfg := &Config{APIHost: "from-file"}
	cfg.applyEnv()

	if cfg.APIHost != "10.0.0.5" {
		t.Fatalf("APIHost = %q", cfg.APIHost)
	}
	if cfg.UI.ExportDir != "/tmp/exports" {
		t.Fatalf("ExportDir = %q", cfg.UI.ExportDir)
	}
}
