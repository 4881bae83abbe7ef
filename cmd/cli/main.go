package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"lavapro-backend/config"
	"lavapro-backend/models"
	"lavapro-backend/services"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// session holds the logged-in user for this terminal, passed around
// explicitly instead of living in package state.
type session struct {
	user *models.User
}

func (s *session) loggedIn() bool { return s.user != nil }

type cli struct {
	reader    *bufio.Reader
	session   session
	auth      *services.AuthService
	customers *services.CustomerService
	orders    *services.OrderService
	payments  *services.PaymentService
	reports   *services.ReportService
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()
	config.DB.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.CustomerNote{},
		&models.Order{},
		&models.Payment{},
	)

	app := &cli{
		reader:    bufio.NewReader(os.Stdin),
		auth:      services.NewAuthService(config.DB),
		customers: services.NewCustomerService(config.DB),
		orders:    services.NewOrderService(config.DB),
		payments:  services.NewPaymentService(config.DB),
		reports:   services.NewReportService(config.DB),
	}
	app.mainMenu()
}

func (a *cli) mainMenu() {
	for {
		fmt.Println("\n--- Menu Principal ---")
		fmt.Println("1. Clientes")
		fmt.Println("2. Pedidos")
		fmt.Println("3. Pagamentos")
		fmt.Println("4. Relatório Semanal")
		fmt.Println("5. Login")
		fmt.Println("6. Registrar Usuário")
		fmt.Println("7. Logout")
		fmt.Println("0. Sair")

		switch a.prompt("Opção: ") {
		case "1":
			a.customerMenu()
		case "2":
			a.orderMenu()
		case "3":
			a.paymentMenu()
		case "4":
			a.weeklyReport()
		case "5":
			a.login()
		case "6":
			a.register()
		case "7":
			a.session.user = nil
			fmt.Println("Logout realizado com sucesso.")
		case "0":
			fmt.Println("Até logo!")
			return
		}
	}
}

// --- auth ---

func (a *cli) login() {
	email := a.prompt("E-mail: ")
	password := a.prompt("Senha: ")

	user, err := a.auth.Authenticate(email, password)
	if err != nil {
		fmt.Println("E-mail ou senha inválidos.")
		return
	}
	a.session.user = user
	fmt.Printf("Login bem-sucedido! Bem-vindo(a), %s.\n", user.Name)
}

func (a *cli) register() {
	name := a.prompt("Nome: ")
	email := a.prompt("E-mail: ")
	password := a.prompt("Senha: ")

	if _, err := a.auth.Register(name, email, password); err != nil {
		fmt.Printf("Erro ao registrar usuário: %v\n", err)
		return
	}
	fmt.Println("Usuário registrado com sucesso!")
}

// --- customers ---

func (a *cli) customerMenu() {
	for {
		fmt.Println("\n--- Clientes ---")
		fmt.Println("1. Listar")
		fmt.Println("2. Adicionar")
		fmt.Println("3. Detalhar")
		fmt.Println("4. Atualizar")
		fmt.Println("5. Deletar")
		fmt.Println("6. Adicionar Anotação")
		fmt.Println("7. Deletar Anotação")
		fmt.Println("0. Voltar")

		switch a.prompt("Opção: ") {
		case "1":
			a.listCustomers()
		case "2":
			a.addCustomer()
		case "3":
			a.showCustomer()
		case "4":
			a.updateCustomer()
		case "5":
			a.deleteCustomer()
		case "6":
			a.addNote()
		case "7":
			a.deleteNote()
		case "0":
			return
		}
	}
}

func (a *cli) listCustomers() {
	search := a.prompt("Termo de busca (nome/telefone/email, opcional): ")

	customers, _, err := a.customers.List(search, 1, 100)
	if err != nil {
		fmt.Printf("Erro: %v\n", err)
		return
	}
	if len(customers) == 0 {
		fmt.Println("Nenhum cliente encontrado.")
		return
	}

	fmt.Printf("\n%-5s %-25s %-15s %-25s\n", "ID", "Nome", "Telefone", "Email")
	fmt.Println(strings.Repeat("-", 70))
	for _, customer := range customers {
		fmt.Printf("%-5d %-25s %-15s %-25s\n",
			customer.ID, customer.Name, customer.Phone, deref(customer.Email))
	}
}

func (a *cli) addCustomer() {
	input := services.CreateCustomerInput{
		Name:        a.prompt("Nome: "),
		Phone:       a.prompt("Telefone: "),
		Email:       a.promptOptional("E-mail (opcional): "),
		Address:     a.promptOptional("Endereço (opcional): "),
		Preferences: a.promptOptional("Preferências/Observações (opcional): "),
	}

	customer, err := a.customers.Create(input)
	if err != nil {
		fmt.Printf("Erro: %v\n", err)
		return
	}
	fmt.Printf("Cliente '%s' adicionado com sucesso com ID: %d\n", customer.Name, customer.ID)
}

func (a *cli) showCustomer() {
	id, ok := a.promptID("ID do cliente: ")
	if !ok {
		return
	}

	detail, err := a.customers.Get(id)
	if err != nil {
		fmt.Printf("Erro: %v\n", err)
		return
	}

	customer := detail.Customer
	fmt.Printf("\nCliente %d: %s\n", customer.ID, customer.Name)
	fmt.Printf("Telefone: %s | E-mail: %s\n", customer.Phone, deref(customer.Email))
	fmt.Printf("Endereço: %s\n", deref(customer.Address))
	fmt.Printf("Preferências: %s\n", deref(customer.Preferences))

	fmt.Println("\nHistórico de pedidos:")
	if len(detail.Orders) == 0 {
		fmt.Println("  (nenhum)")
	}
	for _, order := range detail.Orders {
		fmt.Printf("  #%d %s | R$%s | %s | %s\n",
			order.ID, order.Services, order.Total.StringFixed(2),
			order.Status, order.OrderDate.Format("02/01/2006"))
	}

	fmt.Println("\nAnotações:")
	if len(detail.Notes) == 0 {
		fmt.Println("  (nenhuma)")
	}
	for _, note := range detail.Notes {
		fmt.Printf("  #%d [%s] %s\n", note.ID, note.CreatedAt.Format("02/01/2006"), note.Text)
	}
}

func (a *cli) updateCustomer() {
	id, ok := a.promptID("ID do cliente: ")
	if !ok {
		return
	}

	fmt.Println("Deixe em branco para manter o valor atual.")
	input := services.UpdateCustomerInput{
		Name:        a.promptOptional("Nome: "),
		Phone:       a.promptOptional("Telefone: "),
		Email:       a.promptOptional("E-mail: "),
		Address:     a.promptOptional("Endereço: "),
		Preferences: a.promptOptional("Preferências: "),
	}

	if _, err := a.customers.Update(id, input); err != nil {
		fmt.Printf("Erro: %v\n", err)
		return
	}
	fmt.Println("Cliente atualizado com sucesso!")
}

func (a *cli) deleteCustomer() {
	id, ok := a.promptID("ID do cliente: ")
	if !ok {
		return
	}
	if err := a.customers.Delete(id); err != nil {
		fmt.Printf("Erro: %v\n", err)
		return
	}
	fmt.Println("Cliente deletado com sucesso!")
}

func (a *cli) addNote() {
	id, ok := a.promptID("ID do cliente: ")
	if !ok {
		return
	}
	text := a.prompt("Texto da anotação: ")

	if _, err := a.customers.AddNote(id, text); err != nil {
		fmt.Printf("Erro: %v\n", err)
		return
	}
	fmt.Println("Anotação adicionada com sucesso!")
}

func (a *cli) deleteNote() {
	customerID, ok := a.promptID("ID do cliente: ")
	if !ok {
		return
	}
	noteID, ok := a.promptID("ID da anotação: ")
	if !ok {
		return
	}
	if err := a.customers.DeleteNote(customerID, noteID); err != nil {
		fmt.Printf("Erro: %v\n", err)
		return
	}
	fmt.Println("Anotação deletada com sucesso!")
}

// --- orders ---

func (a *cli) orderMenu() {
	for {
		fmt.Println("\n--- Pedidos ---")
		fmt.Println("1. Listar")
		fmt.Println("2. Adicionar")
		fmt.Println("3. Detalhar")
		fmt.Println("4. Atualizar")
		fmt.Println("5. Deletar")
		fmt.Println("6. Verificar Prazos")
		fmt.Println("0. Voltar")

		switch a.prompt("Opção: ") {
		case "1":
			a.listOrders()
		case "2":
			a.addOrder()
		case "3":
			a.showOrder()
		case "4":
			a.updateOrder()
		case "5":
			a.deleteOrder()
		case "6":
			a.showDeadlines()
		case "0":
			return
		}
	}
}

func (a *cli) listOrders() {
	status := a.prompt("Filtrar por status (opcional): ")

	views, _, err := a.orders.List(status, 0, 1, 100)
	if err != nil {
		fmt.Printf("Erro: %v\n", err)
		return
	}
	if len(views) == 0 {
		fmt.Println("Nenhum pedido encontrado.")
		return
	}

	fmt.Printf("\n%-5s %-20s %-25s %-10s %-10s\n", "ID", "Cliente", "Serviços", "Valor", "Status")
	fmt.Println(strings.Repeat("-", 75))
	for _, view := range views {
		fmt.Printf("%-5d %-20s %-25s R$%-8s %-10s\n",
			view.Order.ID, view.CustomerName, view.Order.Services,
			view.Order.Total.StringFixed(2), view.Order.Status)
	}
}

func (a *cli) addOrder() {
	customerID, ok := a.promptID("ID do cliente: ")
	if !ok {
		return
	}
	servicesText := a.prompt("Serviços: ")
	total, ok := a.promptDecimal("Valor total: ")
	if !ok {
		return
	}
	dueDate := a.promptOptional("Data de entrega (YYYY-MM-DD, opcional): ")

	order, err := a.orders.Create(services.CreateOrderInput{
		CustomerID: customerID,
		Services:   servicesText,
		Total:      &total,
		DueDate:    dueDate,
	})
	if err != nil {
		fmt.Printf("Erro: %v\n", err)
		return
	}
	fmt.Printf("Pedido criado com sucesso com ID: %d\n", order.ID)
}

func (a *cli) showOrder() {
	id, ok := a.promptID("ID do pedido: ")
	if !ok {
		return
	}

	view, err := a.orders.Get(id)
	if err != nil {
		fmt.Printf("Erro: %v\n", err)
		return
	}

	order := view.Order
	fmt.Printf("\nPedido %d - Cliente: %s\n", order.ID, view.CustomerName)
	fmt.Printf("Serviços: %s\n", order.Services)
	fmt.Printf("Valor total: R$%s | Status: %s\n", order.Total.StringFixed(2), order.Status)
	fmt.Printf("Data do pedido: %s\n", order.OrderDate.Format("02/01/2006"))
	if order.DueDate != nil {
		fmt.Printf("Data de entrega: %s\n", order.DueDate.Format("02/01/2006"))
	}
	if view.DaysUntilDue != nil {
		fmt.Printf("Dias para entrega: %d\n", *view.DaysUntilDue)
	}
	fmt.Printf("Pagamento registrado: %v\n", view.PaymentRecorded)
}

func (a *cli) updateOrder() {
	id, ok := a.promptID("ID do pedido: ")
	if !ok {
		return
	}

	fmt.Println("Deixe em branco para manter o valor atual.")
	input := services.UpdateOrderInput{
		Services: a.promptOptional("Serviços: "),
		Status:   a.promptOptional("Status (pendente/pago/entregue/cancelado): "),
		DueDate:  a.promptOptional("Data de entrega (YYYY-MM-DD): "),
	}
	if raw := a.prompt("Valor total: "); raw != "" {
		total, err := decimal.NewFromString(raw)
		if err != nil {
			fmt.Println("Valor inválido.")
			return
		}
		input.Total = &total
	}

	if _, err := a.orders.Update(id, input); err != nil {
		fmt.Printf("Erro: %v\n", err)
		return
	}
	fmt.Println("Pedido atualizado com sucesso!")
}

func (a *cli) deleteOrder() {
	id, ok := a.promptID("ID do pedido: ")
	if !ok {
		return
	}
	if err := a.orders.Delete(id); err != nil {
		fmt.Printf("Erro: %v\n", err)
		return
	}
	fmt.Println("Pedido deletado com sucesso!")
}

func (a *cli) showDeadlines() {
	days := 7
	if raw := a.prompt("Dias futuros (padrão 7): "); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			days = v
		}
	}

	entries, err := a.orders.Deadlines(days)
	if err != nil {
		fmt.Printf("Erro: %v\n", err)
		return
	}
	if len(entries) == 0 {
		fmt.Println("Nenhum pedido com prazo no período.")
		return
	}

	for _, entry := range entries {
		fmt.Printf("#%d %s - %s | entrega %s | %d dia(s) restante(s)\n",
			entry.Order.ID, entry.CustomerName, entry.Order.Services,
			entry.Order.DueDate.Format("02/01/2006"), entry.DaysRemaining)
	}
}

// --- payments ---

func (a *cli) paymentMenu() {
	for {
		fmt.Println("\n--- Pagamentos ---")
		fmt.Println("1. Registrar")
		fmt.Println("2. Histórico")
		fmt.Println("3. Exportar CSV")
		fmt.Println("4. Recibo")
		fmt.Println("0. Voltar")

		switch a.prompt("Opção: ") {
		case "1":
			a.registerPayment()
		case "2":
			a.paymentHistory()
		case "3":
			a.exportPayments()
		case "4":
			a.showReceipt()
		case "0":
			return
		}
	}
}

func (a *cli) registerPayment() {
	orderID, ok := a.promptID("ID do pedido: ")
	if !ok {
		return
	}
	amount, ok := a.promptDecimal("Valor pago: ")
	if !ok {
		return
	}
	method := a.prompt("Forma de pagamento: ")

	payment, err := a.payments.Register(services.RegisterPaymentInput{
		OrderID: orderID,
		Amount:  &amount,
		Method:  method,
	})
	if err != nil {
		fmt.Printf("Erro: %v\n", err)
		return
	}
	fmt.Printf("Pagamento registrado com sucesso com ID: %d\n", payment.ID)
}

func (a *cli) historyFilter() services.HistoryFilter {
	return services.HistoryFilter{
		StartDate: a.prompt("Data inicial (YYYY-MM-DD, opcional): "),
		EndDate:   a.prompt("Data final (YYYY-MM-DD, opcional): "),
		Method:    a.prompt("Forma de pagamento (opcional): "),
	}
}

func (a *cli) paymentHistory() {
	entries, err := a.payments.History(a.historyFilter())
	if err != nil {
		fmt.Printf("Erro: %v\n", err)
		return
	}
	if len(entries) == 0 {
		fmt.Println("Nenhum pagamento encontrado.")
		return
	}

	for _, entry := range entries {
		fmt.Printf("#%d pedido %d | %s | R$%s | %s | %s\n",
			entry.Payment.ID, entry.Payment.OrderID, entry.CustomerName,
			entry.Payment.Amount.StringFixed(2), entry.Payment.Method,
			entry.Payment.PaidAt.Format("02/01/2006 15:04"))
	}
}

func (a *cli) exportPayments() {
	dir := os.Getenv("OUTPUT_DIR")
	if dir == "" {
		dir = "output"
	}

	path, err := a.payments.Export(a.historyFilter(), dir)
	if err != nil {
		fmt.Printf("Erro: %v\n", err)
		return
	}
	fmt.Printf("Histórico financeiro exportado para: %s\n", path)
}

func (a *cli) showReceipt() {
	id, ok := a.promptID("ID do pagamento: ")
	if !ok {
		return
	}

	receipt, err := a.payments.GetReceipt(id)
	if err != nil {
		fmt.Printf("Erro: %v\n", err)
		return
	}

	fmt.Printf("\nRecibo do pagamento %d\n", receipt.PaymentID)
	fmt.Printf("Cliente: %s\n", receipt.Customer)
	fmt.Printf("Serviço: %s\n", receipt.Services)
	fmt.Printf("Valor: R$%s | Forma: %s\n", receipt.Amount.StringFixed(2), receipt.Method)
	fmt.Printf("Data: %s\n", receipt.PaidAt.Format("02/01/2006 15:04"))
}

// --- reports ---

func (a *cli) weeklyReport() {
	if !a.session.loggedIn() {
		fmt.Println("Faça login para acessar relatórios.")
		return
	}

	metrics, err := a.reports.WeeklyMetrics(time.Now())
	if err != nil {
		fmt.Printf("Erro: %v\n", err)
		return
	}

	fmt.Printf("\n--- Relatório Semanal (%s a %s) ---\n", metrics.StartDate, metrics.EndDate)
	fmt.Printf("Total de vendas: R$%s\n", metrics.TotalSales)
	fmt.Printf("Lucro estimado: R$%s\n", metrics.EstimatedProfit)
	fmt.Printf("Clientes atendidos: %d\n", metrics.CustomersServed)
	fmt.Println("Serviços mais vendidos:")
	if len(metrics.TopServices) == 0 {
		fmt.Println("  (nenhum)")
	}
	for _, top := range metrics.TopServices {
		fmt.Printf("  %s: %d\n", top.Service, top.Count)
	}
}

// --- input helpers ---

func (a *cli) prompt(label string) string {
	fmt.Print(label)
	line, _ := a.reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func (a *cli) promptOptional(label string) *string {
	value := a.prompt(label)
	if value == "" {
		return nil
	}
	return &value
}

func (a *cli) promptID(label string) (uint, bool) {
	raw := a.prompt(label)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		fmt.Println("ID inválido.")
		return 0, false
	}
	return uint(id), true
}

func (a *cli) promptDecimal(label string) (decimal.Decimal, bool) {
	raw := a.prompt(label)
	value, err := decimal.NewFromString(raw)
	if err != nil {
		fmt.Println("Valor inválido.")
		return decimal.Zero, false
	}
	return value, true
}

func deref(s *string) string {
	if s == nil {
		return "N/A"
	}
	return *s
}
