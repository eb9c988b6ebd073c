package futures

import (
	"net/http"
	"net/url"
	"time"

	"github.com/veiloq/mexc-futures/pkg/logging"
)

// Version is the SDK release version, reported in the default user-agent.
const Version = "0.1.0"

// DefaultBaseURL is the production MEXC futures REST endpoint.
const DefaultBaseURL = "https://futures.mexc.com"

// DefaultTimeout bounds each request when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Options configures a Client. The zero value is not usable: AuthToken is
// mandatory. All fields are copied at construction and never mutated
// afterwards, so one Options value can safely seed several clients.
type Options struct {
	// AuthToken is the browser-session WEB token ("WEB...") sent in the
	// authorization header. Mandatory.
	AuthToken string

	// BaseURL overrides DefaultBaseURL. Must be an absolute http(s) URL.
	BaseURL string

	// Timeout bounds each HTTP request. Defaults to DefaultTimeout.
	Timeout time.Duration

	// UserAgent overrides the default "mexc-futures-go/<version>" agent.
	UserAgent string

	// ExtraHeaders are set on every request after the SDK's own headers,
	// so they can override any of them, including authorization.
	ExtraHeaders map[string]string

	// LogLevel names the minimum level ("SILENT", "ERROR", "WARN", "INFO",
	// "DEBUG") for the SDK's own logger. Defaults to ERROR. Ignored when
	// Logger is set.
	LogLevel string

	// Logger replaces the SDK's default logger entirely.
	Logger logging.Logger

	// HTTPClient replaces the SDK-owned *http.Client. When set, its
	// Timeout is used as-is and Options.Timeout is ignored.
	HTTPClient *http.Client
}

// validate checks the options and resolves defaults into a settings value
// owned by the client.
func (o Options) validate() (*settings, error) {
	if o.AuthToken == "" {
		return nil, &ConfigurationError{Field: "AuthToken", Reason: "must not be empty"}
	}

	rawURL := o.BaseURL
	if rawURL == "" {
		rawURL = DefaultBaseURL
	}
	baseURL, err := url.Parse(rawURL)
	if err != nil || !baseURL.IsAbs() || baseURL.Host == "" {
		return nil, &ConfigurationError{Field: "BaseURL", Reason: "must be an absolute URL"}
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, &ConfigurationError{Field: "BaseURL", Reason: "scheme must be http or https"}
	}

	timeout := o.Timeout
	if timeout < 0 {
		return nil, &ConfigurationError{Field: "Timeout", Reason: "must not be negative"}
	}
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	userAgent := o.UserAgent
	if userAgent == "" {
		userAgent = "mexc-futures-go/" + Version
	}

	extraHeaders := make(map[string]string, len(o.ExtraHeaders))
	for k, v := range o.ExtraHeaders {
		extraHeaders[k] = v
	}

	logger := o.Logger
	if logger == nil {
		logger = logging.NewLogger()
		logger.SetLevel(logging.ParseLevel(o.LogLevel))
	}

	httpClient := o.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &settings{
		authToken:    o.AuthToken,
		baseURL:      baseURL,
		timeout:      timeout,
		userAgent:    userAgent,
		extraHeaders: extraHeaders,
		logger:       logger,
		httpClient:   httpClient,
	}, nil
}

// settings is the immutable, validated form of Options. It is shared
// read-only across all outstanding calls.
type settings struct {
	authToken    string
	baseURL      *url.URL
	timeout      time.Duration
	userAgent    string
	extraHeaders map[string]string
	logger       logging.Logger
	httpClient   *http.Client
}
