package services

import (
	"fmt"
	"sort"
	"time"

	"lavapro-backend/models"
	"lavapro-backend/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// profitMargin is the fixed estimate applied to weekly sales.
var profitMargin = decimal.NewFromFloat(0.70)

// ServiceCount pairs a service description with how often it was sold.
type ServiceCount struct {
	Service string `json:"servico"`
	Count   int    `json:"quantidade"`
}

// WeeklyMetrics summarizes the most recently completed Monday-to-Sunday
// week. Amounts are rounded to two places for display.
type WeeklyMetrics struct {
	TotalSales      string         `json:"total_vendas"`
	CustomersServed int            `json:"clientes_atendidos_count"`
	TopServices     []ServiceCount `json:"servicos_mais_vendidos"`
	EstimatedProfit string         `json:"lucro_estimado"`
	StartDate       string         `json:"data_inicio"`
	EndDate         string         `json:"data_fim"`
}

type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// WeeklyMetrics aggregates paid and delivered orders from the previous
// calendar week. Pure read: recomputable at any time, persists nothing.
func (s *ReportService) WeeklyMetrics(now time.Time) (*WeeklyMetrics, error) {
	start, end := utils.PreviousWeekWindow(now)

	var orders []models.Order
	if err := s.db.Where("data_pedido >= ? AND data_pedido <= ?", start, end).
		Where("status IN ?", []string{models.StatusPaid, models.StatusDelivered}).
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("weekly orders: %w", err)
	}

	totalSales := decimal.Zero
	customers := make(map[uint]struct{})
	serviceCounts := make(map[string]int)
	var serviceOrder []string

	for _, order := range orders {
		totalSales = totalSales.Add(order.Total)
		customers[order.CustomerID] = struct{}{}
		if _, seen := serviceCounts[order.Services]; !seen {
			serviceOrder = append(serviceOrder, order.Services)
		}
		serviceCounts[order.Services]++
	}

	top := make([]ServiceCount, 0, len(serviceOrder))
	for _, service := range serviceOrder {
		top = append(top, ServiceCount{Service: service, Count: serviceCounts[service]})
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Count > top[j].Count
	})
	if len(top) > 5 {
		top = top[:5]
	}

	return &WeeklyMetrics{
		TotalSales:      totalSales.StringFixed(2),
		CustomersServed: len(customers),
		TopServices:     top,
		EstimatedProfit: totalSales.Mul(profitMargin).StringFixed(2),
		StartDate:       start.Format("02/01/2006"),
		EndDate:         end.Format("02/01/2006"),
	}, nil
}
