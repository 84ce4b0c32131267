package service

import "errors"

// Ошибки бизнес-правил. Вызывающий слой различает их через errors.Is
// и показывает пользователю соответствующее сообщение.
var (
	ErrValidation         = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyBooked      = errors.New("slot is already booked")
	ErrLeadTime           = errors.New("booking must be made at least 24 hours before the session starts")
	ErrCancellationWindow = errors.New("booking can no longer be cancelled less than 24 hours before the session starts")
	ErrConflict           = errors.New("conflict")
)
