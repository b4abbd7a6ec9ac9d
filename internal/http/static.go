package http

import (
	nethttp "net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"lingo/backend/internal/logger"
)

// registerStatic serves the widget bundle from dir. Unknown paths fall back
// to index.html so client-side routes resolve; /api paths never do.
func registerStatic(e *echo.Echo, dir string) {
	if dir == "" {
		return
	}
	indexPath := filepath.Join(dir, "index.html")
	if !isFile(indexPath) {
		logger.Warn("static index missing", "module", "http", "action", "request", "resource", "static", "result", "failed", "path", indexPath)
		return
	}

	logger.Info("static assets enabled", "module", "http", "action", "request", "resource", "static", "result", "ok", "dir", dir)

	fileServer := nethttp.FileServer(nethttp.Dir(dir))

	e.GET("/*", func(c echo.Context) error {
		requestPath := c.Request().URL.Path
		if requestPath == "/api" || strings.HasPrefix(requestPath, "/api/") {
			return echo.ErrNotFound
		}

		if asset, ok := staticAsset(dir, requestPath); ok {
			logger.Debug("static file served", "module", "http", "action", "fetch", "resource", "static", "result", "ok", "path", asset)
			fileServer.ServeHTTP(c.Response(), c.Request())
			return nil
		}

		logger.Debug("static fallback", "module", "http", "action", "fetch", "resource", "static", "result", "ok", "path", requestPath)
		return c.File(indexPath)
	})
}

// staticAsset resolves requestPath to a regular file under dir.
func staticAsset(dir, requestPath string) (string, bool) {
	cleanPath := strings.TrimPrefix(path.Clean("/"+requestPath), "/")
	if cleanPath == "" || cleanPath == "." {
		return "", false
	}
	candidate := filepath.Join(dir, filepath.FromSlash(cleanPath))
	if !isFile(candidate) {
		return "", false
	}
	return candidate, true
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
