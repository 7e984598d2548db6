package repository

import "errors"

// Сентинельные ошибки хранилища. Отсутствие записи — отдельная ошибка,
// а не общий сбой хранилища: вызывающий код маппит её в 404.
var ErrNotFound = errors.New("запись не найдена")
