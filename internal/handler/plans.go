package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aiverse/aiverse-api/internal/model"
)

// Plan describes one pricing tier shown on the marketing site.
type Plan struct {
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Period      string   `json:"period"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Popular     bool     `json:"popular"`
}

// planCatalog is static marketing content; the tier a given account is on
// lives on the account record, not here.
var planCatalog = []Plan{
	{
		Name:        model.PlanFree,
		Price:       "$0",
		Period:      "forever",
		Description: "Perfect for getting started with AI tools",
		Features: []string{
			"5 AI generations per day",
			"Basic Instagram caption generator",
			"Standard support",
			"Community access",
		},
	},
	{
		Name:        model.PlanPro,
		Price:       "$19",
		Period:      "per month",
		Description: "Ideal for creators and professionals",
		Features: []string{
			"Unlimited AI generations",
			"All AI tools access",
			"Priority support",
			"Advanced customization",
			"API access",
			"Export in multiple formats",
		},
		Popular: true,
	},
	{
		Name:        model.PlanEnterprise,
		Price:       "$99",
		Period:      "per month",
		Description: "For teams and large organizations",
		Features: []string{
			"Everything in Pro",
			"Team collaboration",
			"Dedicated support",
			"Custom integrations",
			"Usage analytics",
		},
	},
}

// ListPlans returns the pricing catalog.  Public, and safe to cache by
// route since the response carries no account data.
func ListPlans(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"plans": planCatalog})
}
