package service

import "fmt"

// здесь ошибки бизнес-логики: валидация и отсутствующие задачи.
// Ни одна из них не фатальна - хранилище остаётся рабочим

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

const CodeNotFound = "NOT_FOUND"
const CodeValidation = "VALIDATION_ERROR"

func NewNotFound(id string, err error) *BusinessError {
	return &BusinessError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("задача %s не найдена", id),
		Details: map[string]any{
			"id": id,
		},
		Err: err,
	}
}

func NewValidationError(field, reason string) *BusinessError {
	return &BusinessError{
		Code:    CodeValidation,
		Message: fmt.Sprintf("неверное значение поля '%s': %s", field, reason),
		Details: map[string]any{
			"field":  field,
			"reason": reason,
		},
	}
}
