package anvisaclient

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/vfg2006/manipulados-eda/internal/config"
	"github.com/vfg2006/manipulados-eda/internal/domain"
	"golang.org/x/time/rate"
)

type Client interface {
	FetchMonth(ctx context.Context, month domain.YearMonth, w io.Writer) (int64, error)
}

type AnvisaClient struct {
	httpClient   *http.Client
	baseURL      string
	remotePrefix string
	timeout      time.Duration
	limiter      *rate.Limiter
}

// NewClient cria o cliente do portal de dados abertos da ANVISA
func NewClient(cfg *config.Config) Client {
	timeout := cfg.Anvisa.DownloadTimeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}

	limit := rate.Inf
	if cfg.Anvisa.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.Anvisa.RequestsPerSecond)
	}

	return &AnvisaClient{
		httpClient:   &http.Client{},
		baseURL:      cfg.Anvisa.SourceURL,
		remotePrefix: cfg.Anvisa.RemotePrefix,
		timeout:      timeout,
		limiter:      rate.NewLimiter(limit, 1),
	}
}
