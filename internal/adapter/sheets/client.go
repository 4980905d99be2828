package sheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"roadmap-checkup/internal/config"
	"roadmap-checkup/internal/domain"
	"roadmap-checkup/internal/logger"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("roadmap.internal.adapter.sheets")

const maxSheetBytes = 4 << 20

// Client reads the published spreadsheet tabs as CSV.
type Client struct {
	httpClient  *http.Client
	pricesURL   string
	clinicsURL  string
	programsURL string
}

// NewClient builds a sheet client from config. A nil httpClient gets one
// with the configured timeout.
func NewClient(cfg config.SheetsConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		httpClient:  httpClient,
		pricesURL:   cfg.PricesURL(),
		clinicsURL:  cfg.ClinicsURL(),
		programsURL: cfg.ProgramsURL(),
	}
}

var _ domain.SheetSource = (*Client)(nil)

func (c *Client) FetchPrices(ctx context.Context) (*domain.PriceTable, error) {
	text, err := c.fetch(ctx, "prices", c.pricesURL)
	if err != nil {
		return nil, err
	}
	return ParsePriceTable(text)
}

func (c *Client) FetchClinics(ctx context.Context) (*domain.ClinicDirectory, error) {
	text, err := c.fetch(ctx, "clinics", c.clinicsURL)
	if err != nil {
		return nil, err
	}
	return ParseClinics(text)
}

func (c *Client) FetchPrograms(ctx context.Context) ([]domain.ProgramDescriptor, error) {
	text, err := c.fetch(ctx, "programs", c.programsURL)
	if err != nil {
		return nil, err
	}
	return ParsePrograms(text)
}

func (c *Client) fetch(ctx context.Context, sheet, url string) (string, error) {
	ctx, span := tracer.Start(ctx, "sheets.fetch", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.String("sheets.name", sheet))

	text, err := c.get(ctx, url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Get().Warn("Sheet fetch failed", zap.String("sheet", sheet), zap.Error(err))
		return "", fmt.Errorf("sheets: fetch %s: %w", sheet, err)
	}
	span.SetAttributes(attribute.Int("sheets.bytes", len(text)))
	return text, nil
}

func (c *Client) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSheetBytes))
	if err != nil {
		return "", err
	}
	return string(body), nil
}
