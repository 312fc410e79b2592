package web

import (
	"embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static/index.html
var staticFS embed.FS

// Register mounts the embedded presentation client at the root path.
func Register(r *gin.Engine) {
	page, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		// embed guarantees the file exists at build time
		panic(err)
	}
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	})
}
