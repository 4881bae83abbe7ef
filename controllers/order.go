package controllers

import (
	"net/http"
	"time"

	"lavapro-backend/services"
	"lavapro-backend/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	svc *services.OrderService
}

func NewOrderController(svc *services.OrderService) *OrderController {
	return &OrderController{svc: svc}
}

// CreateOrder creates an order for an existing customer
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var input services.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order, err := oc.svc.Create(input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Pedido criado com sucesso!",
		"pedido":  order,
	})
}

// GetOrders lists orders newest-first with status/customer filters
func (oc *OrderController) GetOrders(c *gin.Context) {
	status := c.Query("status")
	customerID := uint(queryInt(c, "cliente_id", 0))
	page := queryInt(c, "page", 1)
	perPage := queryInt(c, "per_page", 10)

	views, pagination, err := oc.svc.List(status, customerID, page, perPage)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	orders := make([]gin.H, 0, len(views))
	for _, view := range views {
		orders = append(orders, orderJSON(view))
	}

	c.JSON(http.StatusOK, gin.H{
		"pedidos":      orders,
		"total_pages":  pagination.TotalPages,
		"current_page": pagination.CurrentPage,
		"total_items":  pagination.TotalItems,
	})
}

// GetOrder returns one order with its computed delivery countdown
func (oc *OrderController) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := oc.svc.Get(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	body := orderJSON(*view)
	body["pagamento_registrado"] = view.PaymentRecorded
	c.JSON(http.StatusOK, body)
}

// UpdateOrder applies a partial update
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input services.UpdateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order, err := oc.svc.Update(id, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Pedido atualizado com sucesso!",
		"pedido":  order,
	})
}

// DeleteOrder removes an order and its payment
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := oc.svc.Delete(id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pedido deletado com sucesso!"})
}

// GetDeadlines lists pending/paid orders due within the horizon
func (oc *OrderController) GetDeadlines(c *gin.Context) {
	days := queryInt(c, "dias_futuros", 7)

	entries, err := oc.svc.Deadlines(days)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	body := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		body = append(body, gin.H{
			"id":             entry.Order.ID,
			"cliente_id":     entry.Order.CustomerID,
			"cliente_nome":   entry.CustomerName,
			"servicos":       entry.Order.Services,
			"status":         entry.Order.Status,
			"data_entrega":   formatDate(entry.Order.DueDate),
			"dias_restantes": entry.DaysRemaining,
		})
	}
	c.JSON(http.StatusOK, body)
}

func orderJSON(view services.OrderView) gin.H {
	order := view.Order
	return gin.H{
		"id":                order.ID,
		"cliente_id":        order.CustomerID,
		"cliente_nome":      view.CustomerName,
		"servicos":          order.Services,
		"valor_total":       order.Total,
		"status":            order.Status,
		"data_pedido":       order.OrderDate.Format(time.RFC3339),
		"data_entrega":      formatDate(order.DueDate),
		"dias_para_entrega": view.DaysUntilDue,
	}
}
