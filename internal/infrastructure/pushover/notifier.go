package pushover

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"AuthorWatch/internal/config"
	"AuthorWatch/internal/ports"
)

const (
	// DefaultEndpoint is the Pushover message API.
	DefaultEndpoint = "https://api.pushover.net/1/messages.json"

	messageSeparator = " | \n"
)

// Notifier sends new-title alerts through the Pushover API.
type Notifier struct {
	endpoint  string
	userToken string
	apiToken  string
	client    *http.Client
	logger    *slog.Logger
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers the user and application tokens.
func NewNotifier(cfg config.PushoverConfig, log *slog.Logger) *Notifier {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Notifier{
		endpoint:  endpoint,
		userToken: cfg.UserToken,
		apiToken:  cfg.APIToken,
		client:    &http.Client{Timeout: 10 * time.Second},
		logger:    log,
	}
}

// Notify posts one message titled with the author and listing every new title.
// Delivery is not confirmed: an error status is logged and otherwise ignored.
func (n *Notifier) Notify(ctx context.Context, author string, titles []string) error {
	if n.userToken == "" || n.apiToken == "" || n.client == nil {
		return fmt.Errorf("pushover notifier misconfigured")
	}

	n.info("sending pushover message", "author", author, "titles", titles)

	form := url.Values{}
	form.Set("title", author)
	form.Set("message", FormatMessage(titles))
	form.Set("user", n.userToken)
	form.Set("token", n.apiToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		if n.logger != nil {
			n.logger.Warn("pushover rejected message",
				"author", author,
				"status", resp.Status,
				"body", strings.TrimSpace(string(payload)))
		}
	}

	return nil
}

// FormatMessage joins titles into the message body.
func FormatMessage(titles []string) string {
	return strings.Join(titles, messageSeparator)
}

func (n *Notifier) info(msg string, args ...any) {
	if n.logger != nil {
		n.logger.Info(msg, args...)
	}
}
