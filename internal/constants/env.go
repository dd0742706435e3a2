package constants

// Environment variables exported by the test runner for the observability build.
// The names are configurable; these are the defaults.
const (
	// DefaultTokenEnv holds the JWT issued when the observability build was created.
	// Its absence means observability was never enabled for the run.
	DefaultTokenEnv = "BS_TESTOPS_JWT"

	// DefaultBuildIDEnv holds the hashed identifier of the observability build.
	DefaultBuildIDEnv = "BS_TESTOPS_BUILD_HASHED_ID"

	// DefaultBuildCompletedEnv is set once build creation has finished.
	DefaultBuildCompletedEnv = "BS_TESTOPS_BUILD_COMPLETED"
)

// Default remote endpoints.
const (
	// DefaultObservabilityAPIURL is the collector base URL used for build lifecycle calls.
	DefaultObservabilityAPIURL = "https://collector-observability.browserstack.com"

	// DefaultReportURLTemplate renders the human-facing build report link.
	// The single %s verb receives the build identifier.
	DefaultReportURLTemplate = "https://observability.browserstack.com/builds/%s"

	// DefaultFunnelEndpoint is the SDK event ingestion endpoint for funnel data.
	DefaultFunnelEndpoint = "https://api.browserstack.com/sdk/v1/event"

	// DefaultUserAgent is sent on every outbound request.
	DefaultUserAgent = "exithook-cli"
)
