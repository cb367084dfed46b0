package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultMailgunBaseURL = "https://api.mailgun.net"

// MailgunNotifier sends plain-text mail through the Mailgun messages API.
type MailgunNotifier struct {
	baseURL string
	domain  string
	apiKey  string
	from    string
	http    *http.Client
}

type MailgunOptions struct {
	// BaseURL is overridable for tests; empty means the public API.
	BaseURL string

	// From defaults to "Recruitment Bot <postmaster@{domain}>".
	From string

	Timeout time.Duration
}

func NewMailgunNotifier(domain, apiKey string, opts MailgunOptions) *MailgunNotifier {
	base := opts.BaseURL
	if base == "" {
		base = defaultMailgunBaseURL
	}
	from := opts.From
	if from == "" {
		from = fmt.Sprintf("Recruitment Bot <postmaster@%s>", domain)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &MailgunNotifier{
		baseURL: base,
		domain:  domain,
		apiKey:  apiKey,
		from:    from,
		http:    &http.Client{Timeout: timeout},
	}
}

func (n *MailgunNotifier) Send(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("notify: mailgun: recipient is required")
	}

	form := url.Values{}
	form.Set("from", n.from)
	form.Set("to", to)
	form.Set("subject", subject)
	form.Set("text", body)

	endpoint := fmt.Sprintf("%s/v3/%s/messages", n.baseURL, n.domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth("api", n.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.http.Do(req)
	if err != nil {
		return fmt.Errorf("notify: mailgun send to %s: %w", to, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("notify: mailgun send to %s: status %d: %s", to, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return nil
}
