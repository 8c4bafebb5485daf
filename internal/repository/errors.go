package repository

import "errors"

var (
	// ErrPRNotFound возвращается, если pull request не найден в БД.
	ErrPRNotFound = errors.New("pull request not found")

	// ErrJobNotFound возвращается, если задача сканирования не найдена.
	ErrJobNotFound = errors.New("scan job not found")

	// ErrActiveJobExists возвращается при попытке создать вторую активную задачу
	// (PENDING/RUNNING) для того же pull request'а.
	ErrActiveJobExists = errors.New("active scan job already exists for pull request")

	// ErrDuplicateKey возвращается при конфликте ключа идемпотентности задачи.
	ErrDuplicateKey = errors.New("scan job with idempotency key already exists")

	// ErrWatchNotFound возвращается, если подписка не найдена.
	ErrWatchNotFound = errors.New("watch not found")

	// ErrWatchExists возвращается при попытке создать дубликат подписки
	// на пару (репозиторий, пользователь).
	ErrWatchExists = errors.New("watch already exists")

	// ErrSummaryNotFound возвращается, если итог сканирования отсутствует.
	ErrSummaryNotFound = errors.New("security summary not found")

	// ErrNotificationNotFound возвращается, если уведомление не найдено.
	ErrNotificationNotFound = errors.New("notification not found")
)
