package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// notFound answers unmatched routes. With a static dir, non-API GET and
// HEAD requests get the file at that path, or index.html so the browser
// app can route. Everything else is a JSON 404.
func notFound(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		isRead := c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead
		if staticDir != "" && isRead && !isAPIPath(p) {
			if file, ok := staticFile(staticDir, p); ok {
				c.File(file)
				return
			}
			index := filepath.Join(staticDir, "index.html")
			if _, err := os.Stat(index); err == nil {
				c.File(index)
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{
			"success":        false,
			"message":        "API endpoint not found",
			"requested_path": p,
		})
	}
}

func isAPIPath(p string) bool {
	return p == "/api" || strings.HasPrefix(p, "/api/")
}

// staticFile maps urlPath to a regular file under dir.
func staticFile(dir, urlPath string) (string, bool) {
	clean := path.Clean("/" + urlPath)
	if clean == "/" {
		return "", false
	}
	file := filepath.Join(dir, filepath.FromSlash(clean))
	info, err := os.Stat(file)
	if err != nil || info.IsDir() {
		return "", false
	}
	return file, true
}
