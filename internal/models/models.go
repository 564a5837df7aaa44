package models

// All returns every persisted model, in dependency order.
func All() []any {
	return []any{
		&User{},
		&Transaction{},
		&Goal{},
		&GoalProgressEntry{},
		&Activity{},
		&ActivityCompletion{},
		&AuditLog{},
	}
}
