package controllers

import (
	"net/http"
	"os"
	"time"

	"lavapro-backend/services"
	"lavapro-backend/utils"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	svc *services.PaymentService
}

func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{svc: svc}
}

// RegisterPayment records a full payment and marks the order paid
func (pc *PaymentController) RegisterPayment(c *gin.Context) {
	var input services.RegisterPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	payment, err := pc.svc.Register(input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Pagamento registrado com sucesso!",
		"pagamento": payment,
	})
}

// GetHistory lists payments filtered by date range and method
func (pc *PaymentController) GetHistory(c *gin.Context) {
	filter := services.HistoryFilter{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Method:    c.Query("forma_pagamento"),
	}

	entries, err := pc.svc.History(filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	body := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		body = append(body, gin.H{
			"id":              entry.Payment.ID,
			"pedido_id":       entry.Payment.OrderID,
			"cliente_nome":    entry.CustomerName,
			"valor_pago":      entry.Payment.Amount,
			"forma_pagamento": entry.Payment.Method,
			"data_pagamento":  entry.Payment.PaidAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, body)
}

// ExportHistory writes the filtered history to a CSV file
func (pc *PaymentController) ExportHistory(c *gin.Context) {
	filter := services.HistoryFilter{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Method:    c.Query("forma_pagamento"),
	}

	dir := os.Getenv("OUTPUT_DIR")
	if dir == "" {
		dir = "output"
	}

	path, err := pc.svc.Export(filter, dir)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Histórico financeiro exportado para: " + path,
	})
}

// GetReceipt returns the structured receipt bundle for a payment
func (pc *PaymentController) GetReceipt(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	receipt, err := pc.svc.GetReceipt(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Geração de recibo em PDF foi desativada. Informações do recibo:",
		"recibo_data": receipt,
	})
}
