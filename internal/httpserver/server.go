package httpserver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/specialistvlad/bootkernel/internal/ctxlog"
	"github.com/specialistvlad/bootkernel/internal/kernel"
)

// RequestIDHeader carries the kernel request ID on every response.
const RequestIDHeader = "X-Request-Id"

// ShutdownTimeout bounds graceful shutdown in Run.
const ShutdownTimeout = 5 * time.Second

// New builds an echo instance serving k.
func New(k *kernel.Kernel, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.GET("/health", func(c echo.Context) error {
		logger.Debug("Health check endpoint hit.", "remote_addr", c.RealIP(), "path", c.Path())
		if !k.IsBooted() {
			return c.String(http.StatusServiceUnavailable, "Unavailable")
		}
		return c.String(http.StatusOK, "OK")
	})

	e.Any("/*", func(c echo.Context) error {
		httpReq := c.Request()
		body, err := io.ReadAll(httpReq.Body)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "failed to read request body")
		}

		req := &kernel.Request{
			ID:     httpReq.Header.Get(RequestIDHeader),
			Type:   kernel.MasterRequest,
			Method: httpReq.Method,
			Path:   httpReq.URL.Path,
			Header: httpReq.Header.Clone(),
			Body:   body,
		}
		ctx := ctxlog.WithLogger(httpReq.Context(), logger)
		resp := k.Serve(ctx, req)

		for name, values := range resp.Header {
			for _, v := range values {
				c.Response().Header().Add(name, v)
			}
		}
		c.Response().Header().Set(RequestIDHeader, req.ID)

		contentType := resp.Header.Get(echo.HeaderContentType)
		if contentType == "" {
			contentType = echo.MIMEOctetStream
		}
		return c.Blob(resp.Status, contentType, resp.Body)
	})

	return e
}

// Run serves e on addr until ctx is cancelled, then shuts it down.
func Run(ctx context.Context, e *echo.Echo, addr string) error {
	logger := ctxlog.FromContext(ctx)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "address", addr)
		// Start returns http.ErrServerClosed after a graceful shutdown.
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Debug("Closing HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
		return err
	}
	logger.Info("HTTP server shut down gracefully.")
	return <-errCh
}
