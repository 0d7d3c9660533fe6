package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/trackease/internal/domain"
)

type CategoriesBody struct {
	Expense []string `json:"expense"`
	Income  []string `json:"income"`
}

type CategoriesOutput struct {
	Body CategoriesBody
}

// RegisterCategories exposes the suggested category lists.
func RegisterCategories(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/api/categories",
		Summary:     "Suggested categories",
		Tags:        []string{"Transactions"},
	}, func(ctx context.Context, _ *struct{}) (*CategoriesOutput, error) {
		out := &CategoriesOutput{}
		out.Body.Expense = domain.Categories(domain.TypeExpense)
		out.Body.Income = domain.Categories(domain.TypeIncome)
		return out, nil
	})
}
