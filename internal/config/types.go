package config

// File is the optional rosterkeys.yaml configuration.
type File struct {
	EmailDomain string           `yaml:"email_domain"`
	OpenRouter  OpenRouterConfig `yaml:"openrouter"`
	Archive     ArchiveConfig    `yaml:"archive"`
	Metrics     MetricsConfig    `yaml:"metrics"`
}

// OpenRouterConfig configures the key provisioning API.
type OpenRouterConfig struct {
	BaseURL string `yaml:"base_url"`
}

// ArchiveConfig configures upload of the reconciliation CSV to S3-compatible storage.
// An empty Bucket disables archiving.
type ArchiveConfig struct {
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	PathStyle bool   `yaml:"path_style"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// Enabled reports whether archiving is configured.
func (a ArchiveConfig) Enabled() bool {
	return a.Bucket != ""
}

// MetricsConfig configures pushing run metrics to a Prometheus Pushgateway.
// An empty Pushgateway disables pushing.
type MetricsConfig struct {
	Pushgateway string `yaml:"pushgateway"`
	Job         string `yaml:"job"`
}

// Enabled reports whether metrics pushing is configured.
func (m MetricsConfig) Enabled() bool {
	return m.Pushgateway != ""
}
