package config

const (
	// DefaultEmailDomain is appended to usernames when no domain is configured.
	DefaultEmailDomain = "myseneca.ca"

	// DefaultOpenRouterBaseURL is the OpenRouter API root.
	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// DefaultMetricsJob is the Pushgateway job name.
	DefaultMetricsJob = "rosterkeys"

	// DateLayout is the calendar date format used for issue dates and filenames.
	DateLayout = "2006-01-02"

	// StudentTag is the role tag attached to every issued key.
	StudentTag = "student"
)
