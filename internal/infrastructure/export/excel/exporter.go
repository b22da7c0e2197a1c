// internal/infrastructure/export/excel/exporter.go
package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"crypto-market-reporter/internal/types/market"
	"crypto-market-reporter/pkg/logger"

	"github.com/xuri/excelize/v2"
)

// SuccessMessage пишется в лог после успешной выгрузки
const SuccessMessage = "Excel updated successfully."

// Exporter полностью перезаписывает xlsx файл таблицей цикла
type Exporter struct {
	// rename переносит временный файл на место целевого
	rename func(oldpath, newpath string) error
}

// NewExporter создает экспортер
func NewExporter() *Exporter {
	return &Exporter{rename: os.Rename}
}

// Export пишет таблицу в path. Файл либо заменяется целиком,
// либо остается как был; ошибка возвращается как *market.ExportError.
func (e *Exporter) Export(table market.Table, path string) error {
	if err := e.writeAtomic(table, path); err != nil {
		return market.NewExportError(path, err)
	}

	logger.Info(SuccessMessage)
	return nil
}

func (e *Exporter) writeAtomic(table market.Table, path string) (err error) {
	book, err := buildWorkbook(table)
	if err != nil {
		return err
	}
	defer book.Close()

	dir := filepath.Dir(path)
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	tmp, err := os.CreateTemp(dir, "."+base+"-*.xlsx")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err = book.Write(tmp); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = e.rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}

	return nil
}

// buildWorkbook собирает книгу с одним листом market.SheetName
func buildWorkbook(table market.Table) (*excelize.File, error) {
	book := excelize.NewFile()

	defaultSheet := book.GetSheetName(0)
	if err := book.SetSheetName(defaultSheet, market.SheetName); err != nil {
		book.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(market.Columns))
	for i, col := range market.Columns {
		header[i] = col
	}
	if err := book.SetSheetRow(market.SheetName, "A1", &header); err != nil {
		book.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, row := range table {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			book.Close()
			return nil, err
		}
		cells := row.Cells()
		if err := book.SetSheetRow(market.SheetName, cell, &cells); err != nil {
			book.Close()
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	return book, nil
}
