package domain

var expenseCategories = []string{
	"Food",
	"Transportation",
	"School Supplies",
	"Tuition/Fees",
	"Rent/Boarding",
	"Utilities",
	"Clothes",
	"Health",
	"Leisure",
	"Other",
}

var incomeCategories = []string{
	"Allowance",
	"Part-time Job",
	"Scholarship/Grant",
	"Gift",
	"Other",
}

// Categories returns the suggested labels for a type. Categories are advisory;
// any label is accepted on create.
func Categories(t TransactionType) []string {
	var src []string
	switch t {
	case TypeIncome:
		src = incomeCategories
	case TypeExpense:
		src = expenseCategories
	}
	return append([]string(nil), src...)
}
