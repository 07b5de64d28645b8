package api

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/negobench/negobench/api/handlers"
)

// StartServer initializes the REST API and blocks serving it.
func StartServer(port int, h *handlers.Handlers) error {
	r := gin.Default()
	SetupRoutes(r, h)
	return r.Run(fmt.Sprintf(":%d", port))
}
