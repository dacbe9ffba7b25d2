package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const flashCookie = "flash"

// setFlash stores a one-shot notice shown on the next rendered page.
func setFlash(c *gin.Context, msg string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, msg, 60, "/", "", false, true)
}

// popFlash reads and clears the pending notice.
func popFlash(c *gin.Context) string {
	msg, err := c.Cookie(flashCookie)
	if err != nil || msg == "" {
		return ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	return msg
}
