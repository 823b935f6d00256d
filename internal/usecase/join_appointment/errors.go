package join_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("join_appointment: appointment not found")

	// ErrNotJoinable возвращается для отмененных и истекших записей
	ErrNotJoinable = errors.New("join_appointment: appointment is not joinable")

	// ErrJoinWindowClosed возвращается вне окна подключения
	ErrJoinWindowClosed = errors.New("join_appointment: join window is closed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("join_appointment: internal error")
)

// WindowClosedError несет границы окна, чтобы клиент показал, когда вернуться
type WindowClosedError struct {
	OpensAt  string
	ClosesAt string
}

func (e *WindowClosedError) Error() string {
	return ErrJoinWindowClosed.Error() + ": opens at " + e.OpensAt + ", closes at " + e.ClosesAt
}

func (e *WindowClosedError) Unwrap() error {
	return ErrJoinWindowClosed
}
