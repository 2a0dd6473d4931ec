package deployments

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestGrafanaDashboardJSONIsValid(t *testing.T) {
	root := repoRoot(t)
	path := filepath.Join(root, "deployments", "observability", "grafana", "hoopsight_demo_dashboard.json")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read dashboard file: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(content, &decoded); err != nil {
		t.Fatalf("dashboard JSON parse error: %v", err)
	}

	title, _ := decoded["title"].(string)
	if strings.TrimSpace(title) == "" {
		t.Fatal("dashboard title is required")
	}
	panels, ok := decoded["panels"].([]any)
	if !ok || len(panels) == 0 {
		t.Fatal("dashboard must include at least one panel")
	}
}

func TestGrafanaDashboardCoversCoreSignals(t *testing.T) {
	root := repoRoot(t)
	path := filepath.Join(root, "deployments", "observability", "grafana", "hoopsight_demo_dashboard.json")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read dashboard file: %v", err)
	}
	text := string(content)

	requiredExprs := []string{
		"hoopsight:slo_ask_latency_seconds_p95",
		"hoopsight_agent_runs_total",
		"hoopsight:slo_model_error_rate_5m",
	}
	for _, expr := range requiredExprs {
		if !strings.Contains(text, expr) {
			t.Fatalf("dashboard missing panel expression %q", expr)
		}
	}
}

func TestPrometheusRulesContainExpectedAlerts(t *testing.T) {
	root := repoRoot(t)
	path := filepath.Join(root, "deployments", "observability", "prometheus", "hoopsight_rules.yaml")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read rules file: %v", err)
	}
	text := string(content)

	requiredAlerts := []string{
		"HoopsightAskLatencyP95High",
		"HoopsightModelErrorRateHigh",
		"HoopsightSQLFailuresDetected",
		"HoopsightAgentErrorRateHigh",
		"HoopsightHTTPErrorRateHigh",
	}
	for _, alertName := range requiredAlerts {
		if !strings.Contains(text, "alert: "+alertName) {
			t.Fatalf("rules missing alert %q", alertName)
		}
	}
}

func TestPrometheusRecordingRulesContainExpectedRecords(t *testing.T) {
	root := repoRoot(t)
	path := filepath.Join(root, "deployments", "observability", "prometheus", "hoopsight_recording_rules.yaml")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read recording rules file: %v", err)
	}
	text := string(content)

	requiredRecords := []string{
		"hoopsight:slo_ask_latency_seconds_p95",
		"hoopsight:slo_agent_latency_seconds_p95",
		"hoopsight:slo_model_latency_seconds_p95",
		"hoopsight:slo_model_error_rate_5m",
		"hoopsight:slo_agent_error_rate_5m",
		"hoopsight:slo_sql_failures_15m",
		"hoopsight:slo_http_error_rate_5m",
	}
	for _, recordName := range requiredRecords {
		if !strings.Contains(text, "record: "+recordName) {
			t.Fatalf("recording rules missing record %q", recordName)
		}
	}
}

func TestAlertExpressionsReferenceRecordedSeries(t *testing.T) {
	root := repoRoot(t)
	rules, err := os.ReadFile(filepath.Join(root, "deployments", "observability", "prometheus", "hoopsight_rules.yaml"))
	if err != nil {
		t.Fatalf("read rules file: %v", err)
	}
	recordings, err := os.ReadFile(filepath.Join(root, "deployments", "observability", "prometheus", "hoopsight_recording_rules.yaml"))
	if err != nil {
		t.Fatalf("read recording rules file: %v", err)
	}

	// Every recorded series an alert depends on must actually be recorded.
	for _, line := range strings.Split(string(rules), "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "expr:") {
			continue
		}
		expr := strings.TrimSpace(strings.TrimPrefix(trimmed, "expr:"))
		series, _, _ := strings.Cut(expr, " ")
		if !strings.HasPrefix(series, "hoopsight:") {
			continue
		}
		if !strings.Contains(string(recordings), "record: "+series) {
			t.Fatalf("alert references unrecorded series %q", series)
		}
	}
}

func TestPrometheusScrapeExampleContainsMetricsPathAndRules(t *testing.T) {
	root := repoRoot(t)
	path := filepath.Join(root, "deployments", "observability", "prometheus", "prometheus-scrape.example.yaml")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read scrape example: %v", err)
	}
	text := string(content)

	if !strings.Contains(text, "metrics_path: /metrics") {
		t.Fatal("scrape example missing HoopSight metrics path")
	}
	if !strings.Contains(text, "hoopsight_rules.yaml") {
		t.Fatal("scrape example missing hoopsight rule file reference")
	}
	if !strings.Contains(text, "hoopsight_recording_rules.yaml") {
		t.Fatal("scrape example missing hoopsight recording rule file reference")
	}
	if !strings.Contains(text, "job_name: hoopsight-api") {
		t.Fatal("scrape example missing hoopsight-api job")
	}
}

func TestAlertmanagerExampleContainsSeverityRouting(t *testing.T) {
	root := repoRoot(t)
	path := filepath.Join(root, "deployments", "observability", "alertmanager", "alertmanager.example.yaml")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read alertmanager example: %v", err)
	}
	text := string(content)

	requiredTokens := []string{
		"receiver: hoopsight-default",
		"severity=\"critical\"",
		"severity=\"warning\"",
		"name: hoopsight-critical",
		"name: hoopsight-warning",
		"inhibit_rules:",
		"group_by: [alertname, service, severity]",
	}
	for _, token := range requiredTokens {
		if !strings.Contains(text, token) {
			t.Fatalf("alertmanager example missing token %q", token)
		}
	}
}

func repoRoot(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(filename), ".."))
}
