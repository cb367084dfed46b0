package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration required by the orchestrator process.
// All values must come from env (or an env-file loaded at startup).
// No business logic should depend on raw environment variables.
type Config struct {
	App      AppConfig
	Vapi     VapiConfig
	Files    FileConfig
	Store    StoreConfig
	DB       DBConfig
	Window   WindowConfig
	Campaign CampaignConfig
	Mailgun  MailgunConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Env  string
	Port int

	// KeepAliveURL, when set, enables the self-ping loop that keeps
	// free-tier hosts from idling the process out.
	KeepAliveURL string
}

type VapiConfig struct {
	APIKey  string
	AgentID string
	PhoneID string

	// BaseURL is overridable for tests; empty means the public API.
	BaseURL string
}

// FileConfig names the three files the orchestrator owns or consumes.
type FileConfig struct {
	Leads   string
	Ledger  string
	Summary string
}

type StoreConfig struct {
	// Backend selects ledger/summary persistence: "file" or "postgres".
	Backend string
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string

	// SSLMode accepts: disable, require, verify-ca, verify-full
	SSLMode string
}

type WindowConfig struct {
	// Start and End are time-of-day bounds, "HH:MM". The window may span
	// midnight (Start > End means it runs into the next day).
	Start    string
	End      string
	Timezone string
}

type CampaignConfig struct {
	RecruiterEmail string

	PollInterval time.Duration
	PollAttempts int
	CallCooldown time.Duration
	IdleSleep    time.Duration
	ErrorBackoff time.Duration

	// RingConfirm waits for each call to go live before the completion
	// poll starts; off by default.
	RingConfirm bool
}

type MailgunConfig struct {
	APIKey string
	Domain string

	// BaseURL is overridable for tests; empty means the public API.
	BaseURL string
}

type BookingConfig struct {
	// Scheduler selects the booking backend: "tidycal", "calendly" or "none".
	Scheduler string

	TidyCalToken         string
	TidyCalBookingTypeID string
	CalendlyToken        string
	CalendlyEventTypeURI string
}

func Load() (Config, error) {
	c := Config{}
	var parseErrs []error

	c.App.Env = strings.TrimSpace(os.Getenv("APP_ENV"))
	{
		n, err := mustInt("APP_PORT")
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.App.Port = n
	}
	c.App.KeepAliveURL = strings.TrimSpace(os.Getenv("KEEPALIVE_URL"))

	c.Vapi.APIKey = os.Getenv("VAPI_API_KEY")
	c.Vapi.AgentID = strings.TrimSpace(os.Getenv("VAPI_AGENT_ID"))
	c.Vapi.PhoneID = strings.TrimSpace(os.Getenv("VAPI_PHONE_ID"))
	c.Vapi.BaseURL = strings.TrimSpace(os.Getenv("VAPI_BASE_URL"))

	c.Files.Leads = strings.TrimSpace(os.Getenv("LEADS_FILE"))
	c.Files.Ledger = strings.TrimSpace(os.Getenv("LEDGER_FILE"))
	c.Files.Summary = strings.TrimSpace(os.Getenv("SUMMARY_FILE"))

	c.Store.Backend = strings.TrimSpace(os.Getenv("STORE_BACKEND"))

	c.DB.Host = strings.TrimSpace(os.Getenv("DB_HOST"))
	if v := strings.TrimSpace(os.Getenv("DB_PORT")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			parseErrs = append(parseErrs, fmt.Errorf("DB_PORT must be an integer, got %q", v))
		}
		c.DB.Port = n
	}
	c.DB.User = strings.TrimSpace(os.Getenv("DB_USER"))
	c.DB.Password = os.Getenv("DB_PASSWORD")
	c.DB.Name = strings.TrimSpace(os.Getenv("DB_NAME"))
	c.DB.SSLMode = strings.TrimSpace(os.Getenv("DB_SSLMODE"))

	c.Window.Start = strings.TrimSpace(os.Getenv("CALL_WINDOW_START"))
	c.Window.End = strings.TrimSpace(os.Getenv("CALL_WINDOW_END"))
	c.Window.Timezone = strings.TrimSpace(os.Getenv("CAMPAIGN_TZ"))

	c.Campaign.RecruiterEmail = strings.TrimSpace(os.Getenv("RECRUITER_EMAIL"))
	// Poll/backoff env vars are optional; defaults applied in Validate().
	if v := strings.TrimSpace(os.Getenv("POLL_ATTEMPTS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			parseErrs = append(parseErrs, fmt.Errorf("POLL_ATTEMPTS must be an integer, got %q", v))
		}
		c.Campaign.PollAttempts = n
	}
	for _, dv := range []struct {
		key string
		dst *time.Duration
	}{
		{"POLL_INTERVAL", &c.Campaign.PollInterval},
		{"CALL_COOLDOWN", &c.Campaign.CallCooldown},
		{"IDLE_SLEEP", &c.Campaign.IdleSleep},
		{"ERROR_BACKOFF", &c.Campaign.ErrorBackoff},
	} {
		d, err := optionalDuration(dv.key)
		if err != nil {
			parseErrs = append(parseErrs, err)
		}
		*dv.dst = d
	}
	if v := strings.TrimSpace(os.Getenv("RING_CONFIRM")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			parseErrs = append(parseErrs, fmt.Errorf("RING_CONFIRM must be a boolean, got %q", v))
		}
		c.Campaign.RingConfirm = b
	}

	c.Mailgun.APIKey = os.Getenv("MAILGUN_API_KEY")
	c.Mailgun.Domain = strings.TrimSpace(os.Getenv("MAILGUN_DOMAIN"))
	c.Mailgun.BaseURL = strings.TrimSpace(os.Getenv("MAILGUN_BASE_URL"))

	c.Booking.Scheduler = strings.TrimSpace(os.Getenv("SCHEDULER"))
	c.Booking.TidyCalToken = os.Getenv("TIDYCAL_TOKEN")
	c.Booking.TidyCalBookingTypeID = strings.TrimSpace(os.Getenv("TIDYCAL_BOOKING_TYPE_ID"))
	c.Booking.CalendlyToken = os.Getenv("CALENDLY_TOKEN")
	c.Booking.CalendlyEventTypeURI = strings.TrimSpace(os.Getenv("CALENDLY_EVENT_TYPE"))

	if err := joinErrors(parseErrs); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.App.Env == "" {
		errs = append(errs, errors.New("APP_ENV is required"))
	} else if !isValidEnv(c.App.Env) {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of local, dev, staging, production, got %q", c.App.Env))
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("APP_PORT must be a valid port, got %d", c.App.Port))
	}

	if c.Vapi.APIKey == "" {
		errs = append(errs, errors.New("VAPI_API_KEY is required"))
	}
	if c.Vapi.AgentID == "" {
		errs = append(errs, errors.New("VAPI_AGENT_ID is required"))
	}
	if c.Vapi.PhoneID == "" {
		errs = append(errs, errors.New("VAPI_PHONE_ID is required"))
	}

	if c.Files.Leads == "" {
		c.Files.Leads = "phone_numbers.csv"
	}
	if c.Files.Ledger == "" {
		c.Files.Ledger = "called_numbers.csv"
	}
	if c.Files.Summary == "" {
		c.Files.Summary = "call_summaries.json"
	}

	switch c.Store.Backend {
	case "":
		c.Store.Backend = "file"
	case "file":
	case "postgres":
		if c.DB.Host == "" {
			errs = append(errs, errors.New("DB_HOST is required when STORE_BACKEND=postgres"))
		}
		if c.DB.Port <= 0 || c.DB.Port > 65535 {
			errs = append(errs, fmt.Errorf("DB_PORT must be a valid port, got %d", c.DB.Port))
		}
		if c.DB.User == "" {
			errs = append(errs, errors.New("DB_USER is required when STORE_BACKEND=postgres"))
		}
		if c.DB.Name == "" {
			errs = append(errs, errors.New("DB_NAME is required when STORE_BACKEND=postgres"))
		}
		if c.DB.SSLMode == "" {
			if c.IsProduction() {
				errs = append(errs, errors.New("DB_SSLMODE is required in production"))
			} else {
				// Local-friendly default; production must be explicit.
				c.DB.SSLMode = "disable"
			}
		}
		if c.DB.SSLMode != "" && !isValidSSLMode(c.DB.SSLMode) {
			errs = append(errs, fmt.Errorf("DB_SSLMODE must be one of disable, require, verify-ca, verify-full, got %q", c.DB.SSLMode))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_BACKEND must be file or postgres, got %q", c.Store.Backend))
	}

	if c.Window.Start == "" {
		c.Window.Start = "07:00"
	}
	if c.Window.End == "" {
		c.Window.End = "21:00"
	}
	if c.Window.Timezone == "" {
		c.Window.Timezone = "America/New_York"
	}
	if !isValidClock(c.Window.Start) {
		errs = append(errs, fmt.Errorf("CALL_WINDOW_START must be HH:MM, got %q", c.Window.Start))
	}
	if !isValidClock(c.Window.End) {
		errs = append(errs, fmt.Errorf("CALL_WINDOW_END must be HH:MM, got %q", c.Window.End))
	}

	if c.Campaign.RecruiterEmail == "" {
		errs = append(errs, errors.New("RECRUITER_EMAIL is required"))
	}
	if c.Campaign.PollInterval <= 0 {
		c.Campaign.PollInterval = 5 * time.Second
	}
	if c.Campaign.PollAttempts <= 0 {
		// 120 * 5s = 10 minutes of call time at the default interval.
		c.Campaign.PollAttempts = 120
	}
	if c.Campaign.CallCooldown <= 0 {
		c.Campaign.CallCooldown = 10 * time.Second
	}
	if c.Campaign.IdleSleep <= 0 {
		c.Campaign.IdleSleep = 30 * time.Minute
	}
	if c.Campaign.ErrorBackoff <= 0 {
		c.Campaign.ErrorBackoff = 60 * time.Second
	}

	if c.Mailgun.APIKey == "" {
		errs = append(errs, errors.New("MAILGUN_API_KEY is required"))
	}
	if c.Mailgun.Domain == "" {
		errs = append(errs, errors.New("MAILGUN_DOMAIN is required"))
	}

	switch c.Booking.Scheduler {
	case "":
		c.Booking.Scheduler = "none"
	case "none":
	case "tidycal":
		if c.Booking.TidyCalToken == "" {
			errs = append(errs, errors.New("TIDYCAL_TOKEN is required when SCHEDULER=tidycal"))
		}
		if c.Booking.TidyCalBookingTypeID == "" {
			errs = append(errs, errors.New("TIDYCAL_BOOKING_TYPE_ID is required when SCHEDULER=tidycal"))
		}
	case "calendly":
		if c.Booking.CalendlyToken == "" {
			errs = append(errs, errors.New("CALENDLY_TOKEN is required when SCHEDULER=calendly"))
		}
		if c.Booking.CalendlyEventTypeURI == "" {
			errs = append(errs, errors.New("CALENDLY_EVENT_TYPE is required when SCHEDULER=calendly"))
		}
	default:
		errs = append(errs, fmt.Errorf("SCHEDULER must be tidycal, calendly or none, got %q", c.Booking.Scheduler))
	}

	return joinErrors(errs)
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func (c Config) PostgresDSN() string {
	// Avoid logging this string; it contains secrets.
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host,
		c.DB.Port,
		c.DB.User,
		c.DB.Password,
		c.DB.Name,
		c.DB.SSLMode,
	)
}

func mustInt(key string) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func optionalDuration(key string) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration, got %q", key, v)
	}
	return d, nil
}

func appendParseErr(errs []error, n int, err error) (int, []error) {
	if err != nil {
		errs = append(errs, err)
	}
	return n, errs
}

func isValidEnv(v string) bool {
	switch v {
	case "local", "dev", "staging", "production":
		return true
	default:
		return false
	}
}

func isValidSSLMode(v string) bool {
	switch v {
	case "disable", "require", "verify-ca", "verify-full":
		return true
	default:
		return false
	}
}

func isValidClock(v string) bool {
	_, err := time.Parse("15:04", v)
	return err == nil
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	var b strings.Builder
	b.WriteString("config errors:\n")
	for _, e := range errs {
		b.WriteString("- ")
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return errors.New(strings.TrimSpace(b.String()))
}
