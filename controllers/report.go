// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"lavapro-backend/services"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	svc *services.ReportService
}

func NewReportController(svc *services.ReportService) *ReportController {
	return &ReportController{svc: svc}
}

// GetWeeklyMetrics returns last completed week's aggregates
func (rc *ReportController) GetWeeklyMetrics(c *gin.Context) {
	metrics, err := rc.svc.WeeklyMetrics(time.Now())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// GetWeeklyReport wraps the metrics; PDF rendering stays disabled
func (rc *ReportController) GetWeeklyReport(c *gin.Context) {
	metrics, err := rc.svc.WeeklyMetrics(time.Now())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Geração de relatório em PDF foi desativada.",
		"metricas": metrics,
	})
}

// SendWeeklyReport exists for API compatibility; email delivery is disabled
func (rc *ReportController) SendWeeklyReport(c *gin.Context) {
	if _, err := rc.svc.WeeklyMetrics(time.Now()); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Envio de relatórios por e-mail foi desativado.",
	})
}
