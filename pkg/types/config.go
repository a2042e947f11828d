package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "hal-sync/0.1"). Per prd001-fetch R5.2.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the catalog fetch stage.
// Per prd001-fetch R1.2, R5.1-R5.4.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Query is the HAL search query (Solr syntax, e.g. "collCode_s:LAB-X").
	Query string `json:"query" yaml:"query"`

	// Rows is the maximum number of catalog records to request (default 500).
	Rows int `json:"rows" yaml:"rows"`

	// APIToken is an optional bearer token for restricted HAL portals.
	APIToken string `json:"api_token,omitempty" yaml:"api_token,omitempty"`

	// CacheDir is the directory holding the catalog snapshot database.
	CacheDir string `json:"cache_dir" yaml:"cache_dir"`
}

// ArchiveConfig holds settings for the local archive scanner.
// Per prd002-archive R1.1.
type ArchiveConfig struct {
	// Dir is the root directory of the local publication archive.
	Dir string `json:"dir" yaml:"dir"`
}

// ReconcileConfig holds settings for the reconciliation stage.
// Per prd004-reconcile R2.2, R3.1.
type ReconcileConfig struct {
	// Threshold is the confidence value in [0,1] at or above which a
	// target counts as matched (default 0.7).
	Threshold float64 `json:"threshold" yaml:"threshold"`

	// Workers bounds the number of concurrent matching operations.
	// Zero or negative means one worker per CPU.
	Workers int `json:"workers" yaml:"workers"`
}

// ReportConfig holds settings for report and stub generation.
// Per prd005-report R1.1, R3.1.
type ReportConfig struct {
	// OutputPath is where the YAML reconciliation report is written.
	// Empty disables the report file.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`

	// StubsDir is where markdown stubs for missing publications are
	// written. Empty disables stub generation.
	StubsDir string `json:"stubs_dir,omitempty" yaml:"stubs_dir,omitempty"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Fetch     FetchConfig     `json:"fetch" yaml:"fetch"`
	Archive   ArchiveConfig   `json:"archive" yaml:"archive"`
	Reconcile ReconcileConfig `json:"reconcile" yaml:"reconcile"`
	Report    ReportConfig    `json:"report" yaml:"report"`
}
