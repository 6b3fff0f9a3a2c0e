package sales

import (
	"time"

	"github.com/topcardetailing/booking-api/internal/models"
	"github.com/topcardetailing/booking-api/internal/timezone"
)

type Summary struct {
	TodayRevenue      float64 `json:"todayRevenue"`
	TodayAppointments int     `json:"todayAppointments"`

	WeekRevenue      float64 `json:"weekRevenue"`
	WeekAppointments int     `json:"weekAppointments"`

	MonthRevenue      float64 `json:"monthRevenue"`
	MonthAppointments int     `json:"monthAppointments"`

	PendingPayments float64 `json:"pendingPayments"`
	CompletedJobs   int     `json:"completedJobs"`

	MonthExpenses float64 `json:"monthExpenses"`
	NetProfit     float64 `json:"netProfit"`

	AverageOrderValue float64 `json:"averageOrderValue"`
	CompletionRate    float64 `json:"completionRate"`
	CollectionRate    float64 `json:"collectionRate"`
}

// Summarize is a pure pass over the appointment and expense collections.
// Revenue only counts appointments whose payment has actually been collected;
// pendingPayments and completedJobs are all-time, not windowed.
func Summarize(appointments []models.Appointment, expenses []models.Expense, now time.Time) Summary {
	var s Summary

	todayStr := now.Format(timezone.DateLayout)
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, -1, 0)

	for _, ap := range appointments {
		if ap.PaymentStatus == "pending" {
			s.PendingPayments += ap.TotalPrice
		}
		if ap.Status == "completed" {
			s.CompletedJobs++
		}

		date, err := time.ParseInLocation(timezone.DateLayout, ap.AppointmentDate, now.Location())
		if err != nil {
			continue
		}

		paid := ap.PaymentStatus == "paid"

		if ap.AppointmentDate == todayStr {
			s.TodayAppointments++
			if paid {
				s.TodayRevenue += ap.TotalPrice
			}
		}

		if !date.Before(weekAgo) {
			s.WeekAppointments++
			if paid {
				s.WeekRevenue += ap.TotalPrice
			}
		}

		if !date.Before(monthAgo) {
			s.MonthAppointments++
			if paid {
				s.MonthRevenue += ap.TotalPrice
			}
		}
	}

	for _, ex := range expenses {
		if !ex.Date.Before(monthAgo) {
			s.MonthExpenses += ex.Amount
		}
	}
	s.NetProfit = s.MonthRevenue - s.MonthExpenses

	if s.MonthAppointments > 0 {
		s.AverageOrderValue = s.MonthRevenue / float64(s.MonthAppointments)
		s.CompletionRate = float64(s.CompletedJobs) / float64(s.MonthAppointments)
	}
	if s.MonthRevenue+s.PendingPayments > 0 {
		s.CollectionRate = s.MonthRevenue / (s.MonthRevenue + s.PendingPayments)
	}

	return s
}
