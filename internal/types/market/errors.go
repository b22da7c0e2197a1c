// internal/types/market/errors.go
package market

import (
	"errors"
	"fmt"
)

// ErrNoData - нет данных для анализа
var ErrNoData = errors.New("no data available for analysis")

// FetchError - ошибка получения рыночных данных
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError создает ошибку получения данных
func NewFetchError(op string, err error) *FetchError {
	return &FetchError{Op: op, Err: err}
}

// ExportError - ошибка записи таблицы
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// NewExportError создает ошибку экспорта
func NewExportError(path string, err error) *ExportError {
	return &ExportError{Path: path, Err: err}
}
