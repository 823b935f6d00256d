package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrAccessDenied возвращается, когда запись принадлежит другому провайдеру
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда запись не может быть отменена
	ErrCannotCancel = errors.New("appointment cannot be cancelled")

	// ErrCannotConfirm возвращается, когда запись не может быть подтверждена
	ErrCannotConfirm = errors.New("appointment cannot be confirmed")

	// ErrNotJoinable возвращается при выдаче токена для отмененной или истекшей записи
	ErrNotJoinable = errors.New("appointment is not joinable")

	// ErrNotConfirmed возвращается при отметке письма для неподтвержденной записи
	ErrNotConfirmed = errors.New("appointment is not confirmed")

	// ErrConfirmationEmailAlreadySent возвращается при повторной отметке письма
	ErrConfirmationEmailAlreadySent = errors.New("confirmation email already sent")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
