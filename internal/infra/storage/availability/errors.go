package availability

import "errors"

var (
	// ErrAvailabilityNotFound возвращается, когда у провайдера нет расписания
	ErrAvailabilityNotFound = errors.New("availability.repository: availability not configured")

	// ErrProfileNotFound возвращается, когда профиль провайдера не найден
	ErrProfileNotFound = errors.New("availability.repository: profile not found")

	// ErrCorruptedDocument возвращается, когда сохраненный JSON не разбирается
	ErrCorruptedDocument = errors.New("availability.repository: corrupted availability document")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
