package proxy

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// ============================================================
// Proxy Handler
// ============================================================

// Proxy пересылает запросы в один upstream-сервис.
type Proxy struct {
	target string
	client *http.Client
	logger *zap.Logger
}

func New(target string, timeout time.Duration, logger *zap.Logger) *Proxy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Proxy{
		target: strings.TrimRight(target, "/"),
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Strip возвращает обработчик, который отрезает prefix от пути и пересылает
// остаток вместе с query-строкой.
func (p *Proxy) Strip(prefix string) fiber.Handler {
	return func(c fiber.Ctx) error {
		path := strings.TrimPrefix(c.Path(), prefix)
		if path == "" {
			path = "/"
		}
		return p.forward(c, p.target+path)
	}
}

func (p *Proxy) forward(c fiber.Ctx, targetURL string) error {
	if qs := c.Request().URI().QueryString(); len(qs) > 0 {
		targetURL += "?" + string(qs)
	}

	p.logger.Debug("[PROXY] forwarding",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.String("content_type", c.Get(fiber.HeaderContentType)),
		zap.Int("content_length", len(c.Body())),
		zap.String("target", targetURL),
	)

	req, err := http.NewRequestWithContext(c.Context(), c.Method(), targetURL, bytes.NewReader(c.Body()))
	if err != nil {
		p.logger.Error("[PROXY] build request", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "proxy failed"})
	}

	if contentType := c.Get(fiber.HeaderContentType); contentType != "" {
		req.Header.Set(fiber.HeaderContentType, contentType)
	}
	if auth := c.Get(fiber.HeaderAuthorization); auth != "" {
		req.Header.Set(fiber.HeaderAuthorization, auth)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Warn("[PROXY] upstream unreachable", zap.String("target", targetURL), zap.Error(err))
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "failed to reach upstream service"})
	}
	defer resp.Body.Close()

	return p.copyResponse(c, resp)
}

func (p *Proxy) copyResponse(c fiber.Ctx, resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		p.logger.Warn("[PROXY] read response", zap.Error(err))
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "invalid upstream response"})
	}

	for key, values := range resp.Header {
		if len(values) > 0 {
			c.Set(key, values[0])
		}
	}

	c.Status(resp.StatusCode)
	return c.Send(data)
}

// Ping проверяет upstream по указанному пути.
func (p *Proxy) Ping(path string) error {
	resp, err := p.client.Get(p.target + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}

type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return "upstream status " + http.StatusText(e.Code)
}
