package main

import "errors"

var (
	// ErrFileAccess возвращается, когда лог-файл не существует, недоступен для чтения
	// или не является обычным файлом.
	ErrFileAccess = errors.New("file access error")

	// ErrRead возвращается при ошибке чтения посреди файла.
	ErrRead = errors.New("read error")

	// ErrNoPath возвращается, если путь к логу не задан ни аргументом, ни флагом, ни переменной окружения.
	ErrNoPath = errors.New("log path not specified")

	// ErrUnknownFormat возвращается для неизвестного формата отчёта.
	ErrUnknownFormat = errors.New("unknown report format")
)
