package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/starkpulse/gas-backend/internal/utils/config"
	"github.com/starkpulse/gas-backend/internal/utils/logger"
)

// Matches the page-status span on the network status page.
var statusRegex = regexp.MustCompile(`(?s)<div class="page-status[^"]*">\s*<span class="status font-large">\s*(.*?)\s*</span>`)

// NetworkStatus scrapes the status page for the current network state label.
type NetworkStatus struct {
	url    string
	client *http.Client
	logger *logger.Logger
}

func NewNetworkStatus(appConfig *config.AppConfig, logger *logger.Logger) *NetworkStatus {
	return &NetworkStatus{
		url:    appConfig.Upstream.StatusPageURL,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

const statusSource = "network-status"

func (c *NetworkStatus) FetchStatus(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", newError(KindTransport, statusSource, errors.Wrap(err, "failed to create request"))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", newError(KindTransport, statusSource, errors.Wrap(err, "request failed"))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", newError(KindTransport, statusSource, fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newError(KindTransport, statusSource, errors.Wrap(err, "failed to read response"))
	}

	match := statusRegex.FindSubmatch(body)
	if len(match) < 2 {
		return "", newError(KindUnavailable, statusSource, errors.New("page status element not found"))
	}

	return strings.TrimSpace(string(match[1])), nil
}
