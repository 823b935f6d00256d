package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrServiceNotAvailable возвращается, когда услуга не найдена, неактивна, без цены или чужая
	ErrServiceNotAvailable = errors.New("create_appointment: service not available")

	// ErrInvalidDuration возвращается, когда длина интервала не совпадает с длительностью услуги
	ErrInvalidDuration = errors.New("create_appointment: slot length does not match service duration")

	// ErrSlotInPast возвращается, когда слот уже начался или слишком близко
	ErrSlotInPast = errors.New("create_appointment: slot is in the past")

	// ErrSlotNotOffered возвращается, когда интервал не совпадает ни с одним слотом расписания
	ErrSlotNotOffered = errors.New("create_appointment: slot is not offered by the provider")

	// ErrSlotTaken возвращается, когда слот заняли между показом и бронированием
	ErrSlotTaken = errors.New("create_appointment: slot no longer available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
