/* Copyright (c) 2025 PMO-MCP Authors
 * SPDX-License-Identifier: BSD-3-Clause */
package config

import (
	"log"
	"os"
	"time"
)

type Config struct {
	AppEnv   string
	TZ       string
	HTTPAddr string

	JiraBaseURL  string
	JiraUsername string
	JiraAPIToken string

	ConfluenceBaseURL  string
	ConfluenceUsername string
	ConfluenceAPIToken string

	// Jira custom field carrying the story point estimate.
	StoryPointsField string

	HTTPTimeout time.Duration

	// Optional scheduled report publishing; disabled unless all three are set.
	ReportCronSpec string
	ReportSprintID string
	ReportPageID   string
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" { return def }
	return v
}

func dur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" { return def }
	d, err := time.ParseDuration(v)
	if err != nil { return def }
	return d
}

func Load() Config {
	cfg := Config{
		AppEnv:   getenv("APP_ENV", "dev"),
		TZ:       getenv("APP_TZ", "UTC"),
		HTTPAddr: getenv("HTTP_ADDR", ":8080"),

		JiraBaseURL:  getenv("JIRA_URL", ""),
		JiraUsername: getenv("JIRA_USERNAME", ""),
		JiraAPIToken: getenv("JIRA_API_TOKEN", ""),

		ConfluenceBaseURL:  getenv("CONFLUENCE_URL", ""),
		ConfluenceUsername: getenv("CONFLUENCE_USERNAME", ""),
		ConfluenceAPIToken: getenv("CONFLUENCE_API_TOKEN", ""),

		StoryPointsField: getenv("JIRA_STORY_POINTS_FIELD", "customfield_10016"),

		HTTPTimeout: dur("HTTP_TIMEOUT", 15*time.Second),

		ReportCronSpec: getenv("REPORT_CRON_SPEC", ""),
		ReportSprintID: getenv("REPORT_SPRINT_ID", ""),
		ReportPageID:   getenv("REPORT_PAGE_ID", ""),
	}

	// PORT takes precedence over HTTP_ADDR for platform compatibility
	if p := os.Getenv("PORT"); p != "" {
		cfg.HTTPAddr = ":" + p
	}

	// set global timezone if available
	if loc, err := time.LoadLocation(cfg.TZ); err == nil {
		time.Local = loc
	} else {
		log.Printf("warning: cannot load TZ %s: %v", cfg.TZ, err)
	}

	return cfg
}

// MissingVars lists required credential variables that are unset. Startup
// proceeds regardless; requests against the unconfigured service will fail.
func (c Config) MissingVars() []string {
	var out []string
	checks := []struct{ name, val string }{
		{"JIRA_URL", c.JiraBaseURL},
		{"JIRA_USERNAME", c.JiraUsername},
		{"JIRA_API_TOKEN", c.JiraAPIToken},
		{"CONFLUENCE_URL", c.ConfluenceBaseURL},
		{"CONFLUENCE_USERNAME", c.ConfluenceUsername},
		{"CONFLUENCE_API_TOKEN", c.ConfluenceAPIToken},
	}
	for _, ch := range checks {
		if ch.val == "" { out = append(out, ch.name) }
	}
	return out
}

// ReportJobEnabled reports whether the scheduled publisher has everything it
// needs to run.
func (c Config) ReportJobEnabled() bool {
	return c.ReportCronSpec != "" && c.ReportSprintID != "" && c.ReportPageID != ""
}
