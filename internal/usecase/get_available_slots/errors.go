package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrDateInPast возвращается, когда дата раньше сегодняшней
	ErrDateInPast = errors.New("date is in the past")

	// ErrServiceNotAvailable возвращается, когда услуга не найдена, неактивна или принадлежит другому провайдеру
	ErrServiceNotAvailable = errors.New("service not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
