package domain

// ImportError — причина отказа одной строки CSV-импорта.
type ImportError struct {
	Line   int    `json:"line"`   // номер строки данных, с 1 (заголовок не считается)
	Reason string `json:"reason"`
}

// ImportOutcome — итог одного вызова импорта.
// Успешные строки отдельно не перечисляются, только счётчик.
type ImportOutcome struct {
	SuccessCount int           `json:"success_count"`
	FailureCount int           `json:"failure_count"`
	Errors       []ImportError `json:"errors"`
}
