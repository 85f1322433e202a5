package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "APP_TZ", "HTTP_ADDR", "PORT", "HTTP_TIMEOUT",
		"JIRA_URL", "JIRA_USERNAME", "JIRA_API_TOKEN",
		"CONFLUENCE_URL", "CONFLUENCE_USERNAME", "CONFLUENCE_API_TOKEN",
		"JIRA_STORY_POINTS_FIELD",
		"REPORT_CRON_SPEC", "REPORT_SPRINT_ID", "REPORT_PAGE_ID",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := Load()
	if cfg.HTTPAddr != ":8080" { t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr) }
	if cfg.StoryPointsField != "customfield_10016" { t.Errorf("StoryPointsField = %q", cfg.StoryPointsField) }
	if cfg.HTTPTimeout != 15*time.Second { t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout) }
	if cfg.ReportJobEnabled() { t.Error("report job should be disabled by default") }
}

func TestLoad_PortOverridesAddr(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("PORT", "5000")
	cfg := Load()
	if cfg.HTTPAddr != ":5000" { t.Errorf("HTTPAddr = %q, want :5000", cfg.HTTPAddr) }
}

func TestMissingVars_ReportsUnsetCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("JIRA_URL", "https://example.atlassian.net")
	t.Setenv("JIRA_USERNAME", "user@example.com")
	t.Setenv("JIRA_API_TOKEN", "token")
	cfg := Load()
	missing := cfg.MissingVars()
	if len(missing) != 3 { t.Fatalf("missing = %v, want the 3 confluence vars", missing) }
	for _, name := range missing {
		switch name {
		case "CONFLUENCE_URL", "CONFLUENCE_USERNAME", "CONFLUENCE_API_TOKEN":
		default:
			t.Errorf("unexpected missing var %q", name)
		}
	}
}

func TestMissingVars_EmptyWhenConfigured(t *testing.T) {
	clearEnv(t)
	t.Setenv("JIRA_URL", "https://example.atlassian.net")
	t.Setenv("JIRA_USERNAME", "u")
	t.Setenv("JIRA_API_TOKEN", "t")
	t.Setenv("CONFLUENCE_URL", "https://example.atlassian.net/wiki")
	t.Setenv("CONFLUENCE_USERNAME", "u")
	t.Setenv("CONFLUENCE_API_TOKEN", "t")
	if missing := Load().MissingVars(); len(missing) != 0 {
		t.Errorf("missing = %v, want none", missing)
	}
}

func TestReportJobEnabled_RequiresAllThree(t *testing.T) {
	clearEnv(t)
	t.Setenv("REPORT_CRON_SPEC", "0 9 * * MON")
	t.Setenv("REPORT_SPRINT_ID", "42")
	if Load().ReportJobEnabled() { t.Error("job enabled without REPORT_PAGE_ID") }
	t.Setenv("REPORT_PAGE_ID", "12345")
	if !Load().ReportJobEnabled() { t.Error("job disabled with full config") }
}
