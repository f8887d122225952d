package controllers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/ecomm-labs/storefront-api/pkg/response"
)

type HealthController struct {
	db *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

// Home handles GET /.
func (c *HealthController) Home(w http.ResponseWriter, _ *http.Request) {
	w.Write([]byte("Home")) //nolint:errcheck
}

// Check handles GET /healthz: a DB ping decides healthy or not.
func (c *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := c.db.DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		response.Error(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	response.Message(w, "ok")
}
