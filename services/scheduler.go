package services

import (
	"log"
	"time"

	"lavapro-backend/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// reminderAgeDays: pending orders older than this get a payment reminder.
const reminderAgeDays = 3

// Scheduler runs the two background jobs: the weekly report every Monday at
// 09:00 and payment reminders every day at 10:00. Overlapping fires of the
// same job are skipped, not queued.
type Scheduler struct {
	db       *gorm.DB
	reports  *ReportService
	notifier Notifier
	cron     *cron.Cron
}

func NewScheduler(db *gorm.DB, notifier Notifier) *Scheduler {
	return &Scheduler{
		db:       db,
		reports:  NewReportService(db),
		notifier: notifier,
		cron:     cron.New(),
	}
}

func (s *Scheduler) Start() {
	logger := cron.DefaultLogger

	s.cron.AddJob("0 9 * * 1", cron.NewChain(
		cron.SkipIfStillRunning(logger), cron.Recover(logger),
	).Then(cron.FuncJob(s.RunWeeklyReport)))

	s.cron.AddJob("0 10 * * *", cron.NewChain(
		cron.SkipIfStillRunning(logger), cron.Recover(logger),
	).Then(cron.FuncJob(s.RunPaymentReminders)))

	s.cron.Start()
	log.Println("Job de Relatório Semanal agendado para toda segunda-feira às 09:00.")
	log.Println("Job de Lembretes de Pagamento agendado para todo dia às 10:00.")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("Scheduler desligado.")
}

// RunWeeklyReport computes last week's metrics and hands them to the
// notification port. Failures are logged and never crash the runner.
func (s *Scheduler) RunWeeklyReport() {
	log.Println("Executando tarefa agendada: Relatório Semanal...")

	metrics, err := s.reports.WeeklyMetrics(time.Now())
	if err != nil {
		log.Printf("Erro ao gerar relatório semanal agendado: %v", err)
		return
	}

	log.Printf("Relatório semanal %s a %s: vendas R$%s, lucro estimado R$%s, %d clientes atendidos.",
		metrics.StartDate, metrics.EndDate, metrics.TotalSales,
		metrics.EstimatedProfit, metrics.CustomersServed)

	if err := s.notifier.SendWeeklyReport("", metrics); err != nil {
		log.Printf("Erro ao enviar relatório semanal: %v", err)
	}
}

// RunPaymentReminders scans pending orders older than reminderAgeDays and
// attempts to notify each customer.
func (s *Scheduler) RunPaymentReminders() {
	log.Println("Executando tarefa agendada: Lembretes de Pagamento...")

	cutoff := time.Now().AddDate(0, 0, -reminderAgeDays)

	var orders []models.Order
	if err := s.db.Where("status = ? AND data_pedido <= ?", models.StatusPending, cutoff).
		Preload("Customer").Find(&orders).Error; err != nil {
		log.Printf("Erro ao buscar pedidos pendentes: %v", err)
		return
	}

	for _, order := range orders {
		if order.Customer == nil {
			log.Printf("Nenhum método de lembrete configurado para o pedido %d.", order.ID)
			continue
		}
		if err := s.notifier.SendPaymentReminder(*order.Customer, order); err != nil {
			log.Printf("Erro ao enviar lembrete do pedido %d: %v", order.ID, err)
		}
	}
}
