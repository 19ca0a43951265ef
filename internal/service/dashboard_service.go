package service

import (
	"context"

	"github.com/shopspring/decimal"
)

// Trend is the direction a stat moved since the previous period.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// StatPanel is one headline number on the admin dashboard.
type StatPanel struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Change string `json:"change"`
	Trend  Trend  `json:"trend"`
}

// Activity is one entry of the recent activity feed.
type Activity struct {
	Actor  string `json:"actor"`
	Action string `json:"action"`
	When   string `json:"when"`
}

// FreelancerRank is a row of the top freelancers panel.
type FreelancerRank struct {
	Name     string          `json:"name"`
	Skill    string          `json:"skill"`
	Rating   decimal.Decimal `json:"rating"`
	Earnings decimal.Decimal `json:"earnings"`
}

// Link is a navigation target or quick action.
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// AdminDashboard is everything the admin landing page shows.
type AdminDashboard struct {
	Stats          []StatPanel      `json:"stats"`
	Earnings       decimal.Decimal  `json:"earnings"`
	PlatformFee    decimal.Decimal  `json:"platform_fee"`
	RecentActivity []Activity       `json:"recent_activity"`
	TopFreelancers []FreelancerRank `json:"top_freelancers"`
	QuickActions   []Link           `json:"quick_actions"`
	Navigation     []Link           `json:"navigation"`
}

// DashboardService builds dashboard view data.
type DashboardService interface {
	AdminDashboard(ctx context.Context) *AdminDashboard
}

// platformFeeRate is the share of gross earnings kept by the marketplace.
var platformFeeRate = decimal.RequireFromString("0.10")

type dashboardService struct{}

// NewDashboardService returns a service serving fixed sample data.
func NewDashboardService() DashboardService {
	return &dashboardService{}
}

// AdminDashboard returns the sample admin dashboard. Each call builds fresh slices
// so callers may modify the result.
func (s *dashboardService) AdminDashboard(_ context.Context) *AdminDashboard {
	freelancers := []FreelancerRank{
		{Name: "Priya Sharma", Skill: "Full-stack development", Rating: decimal.RequireFromString("4.9"), Earnings: decimal.RequireFromString("18450.00")},
		{Name: "Daniel Okafor", Skill: "UI/UX design", Rating: decimal.RequireFromString("4.8"), Earnings: decimal.RequireFromString("12980.50")},
		{Name: "Mei Lin", Skill: "Data analysis", Rating: decimal.RequireFromString("4.8"), Earnings: decimal.RequireFromString("11020.75")},
		{Name: "Lucas Moreau", Skill: "Copywriting", Rating: decimal.RequireFromString("4.7"), Earnings: decimal.RequireFromString("7640.00")},
	}

	earnings := decimal.Zero
	for _, f := range freelancers {
		earnings = earnings.Add(f.Earnings)
	}

	return &AdminDashboard{
		Stats: []StatPanel{
			{Label: "Total Users", Value: "12,480", Change: "+8.2%", Trend: TrendUp},
			{Label: "Active Jobs", Value: "1,326", Change: "+3.1%", Trend: TrendUp},
			{Label: "Open Disputes", Value: "14", Change: "-12.5%", Trend: TrendDown},
			{Label: "Pending Approvals", Value: "57", Change: "0%", Trend: TrendFlat},
		},
		Earnings:    earnings,
		PlatformFee: earnings.Mul(platformFeeRate).Round(2),
		RecentActivity: []Activity{
			{Actor: "Priya Sharma", Action: "completed \"E-commerce checkout revamp\"", When: "5 minutes ago"},
			{Actor: "Acme Corp", Action: "posted a new job \"Mobile app QA\"", When: "22 minutes ago"},
			{Actor: "Daniel Okafor", Action: "submitted a proposal", When: "1 hour ago"},
			{Actor: "Support", Action: "resolved dispute #2041", When: "3 hours ago"},
			{Actor: "Bright Labs", Action: "joined as an employer", When: "yesterday"},
		},
		TopFreelancers: freelancers,
		QuickActions: []Link{
			{Label: "Review pending approvals", Href: "/admin/approvals"},
			{Label: "Manage users", Href: "/admin/users"},
			{Label: "View disputes", Href: "/admin/disputes"},
			{Label: "Platform settings", Href: "/admin/settings"},
		},
		Navigation: []Link{
			{Label: "Dashboard", Href: "/"},
			{Label: "Users", Href: "/admin/users"},
			{Label: "Jobs", Href: "/admin/jobs"},
			{Label: "Payments", Href: "/admin/payments"},
			{Label: "Reports", Href: "/admin/reports"},
		},
	}
}
