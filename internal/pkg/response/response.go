// Package response holds the two JSON envelopes every handler replies with.
package response

import "github.com/gin-gonic/gin"

// Success wraps data in the {"success": true, "data": ...} envelope.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

// Error wraps a machine-readable code and a human message in the
// {"success": false, "error": {...}} envelope.
func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
