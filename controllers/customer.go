package controllers

import (
	"net/http"
	"time"

	"lavapro-backend/services"
	"lavapro-backend/utils"

	"github.com/gin-gonic/gin"
)

type CustomerController struct {
	svc *services.CustomerService
}

func NewCustomerController(svc *services.CustomerService) *CustomerController {
	return &CustomerController{svc: svc}
}

// CreateCustomer creates a new customer
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var input services.CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customer, err := cc.svc.Create(input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Cliente criado com sucesso!",
		"cliente": customer,
	})
}

// GetCustomers lists customers with optional search and pagination
func (cc *CustomerController) GetCustomers(c *gin.Context) {
	search := c.Query("search")
	page := queryInt(c, "page", 1)
	perPage := queryInt(c, "per_page", 10)

	customers, pagination, err := cc.svc.List(search, page, perPage)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clientes":     customers,
		"total_pages":  pagination.TotalPages,
		"current_page": pagination.CurrentPage,
		"total_items":  pagination.TotalItems,
	})
}

// GetCustomer returns one customer with order history and notes
func (cc *CustomerController) GetCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := cc.svc.Get(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	orders := make([]gin.H, 0, len(detail.Orders))
	for _, order := range detail.Orders {
		orders = append(orders, gin.H{
			"id":           order.ID,
			"servicos":     order.Services,
			"valor_total":  order.Total,
			"status":       order.Status,
			"data_pedido":  order.OrderDate.Format(time.RFC3339),
			"data_entrega": formatDate(order.DueDate),
		})
	}

	customer := detail.Customer
	c.JSON(http.StatusOK, gin.H{
		"id":                customer.ID,
		"nome":              customer.Name,
		"telefone":          customer.Phone,
		"email":             customer.Email,
		"endereco":          customer.Address,
		"preferencias":      customer.Preferences,
		"historico_pedidos": orders,
		"anotacoes":         detail.Notes,
	})
}

// UpdateCustomer applies a partial update
func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input services.UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customer, err := cc.svc.Update(id, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cliente atualizado com sucesso!",
		"cliente": customer,
	})
}

// DeleteCustomer removes a customer and everything it owns
func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := cc.svc.Delete(id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cliente deletado com sucesso!"})
}

type addNoteInput struct {
	Text string `json:"texto"`
}

// AddNote attaches a free-text note to a customer
func (cc *CustomerController) AddNote(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input addNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	note, err := cc.svc.AddNote(id, input.Text)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Anotação adicionada com sucesso!",
		"anotacao": note,
	})
}

// DeleteNote removes a note belonging to the customer
func (cc *CustomerController) DeleteNote(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	noteID, ok := parseIDParam(c, "noteId")
	if !ok {
		return
	}

	if err := cc.svc.DeleteNote(customerID, noteID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Anotação deletada com sucesso!"})
}

func formatDate(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}
