package availability

import "errors"

var (
	// ErrAvailabilityNotFound возвращается, когда расписание не настроено
	ErrAvailabilityNotFound = errors.New("availability not configured")

	// ErrProviderNotFound возвращается, когда профиль провайдера не найден
	ErrProviderNotFound = errors.New("provider not found")

	// ErrBlockNotFound возвращается, когда блокировка не найдена
	ErrBlockNotFound = errors.New("block not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
