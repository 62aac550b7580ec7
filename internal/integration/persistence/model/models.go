package model

// All returns every model managed by auto-migration.
func All() []interface{} {
	return []interface{}{
		&ExpenseModel{},
		&RecurringExpenseModel{},
		&BudgetModel{},
		&MonthlyBudgetModel{},
		&EmailQueueModel{},
		&JobRunModel{},
	}
}
