package model

import "time"

// InstructorSettings настройки преподавателя, в том числе шаблон доступности.
// Хранится на сервере, а не на клиенте.
type InstructorSettings struct {
	InstructorID         int64     `json:"instructor_id"`
	AvailabilityTemplate string    `json:"availability_template"`
	UpdatedAt            time.Time `json:"updated_at"`
}
