package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Gunvolt24/wb_shop/internal/domain"
	"github.com/Gunvolt24/wb_shop/pkg/metrics"
)

// ErrCSVParse — фатальный сбой разбора самого потока CSV (не строки данных).
// Построчные проблемы никогда не поднимаются ошибкой — только копятся в итоге.
var ErrCSVParse = errors.New("csv parsing failed")

// Имена обязательных колонок заголовка (регистр не важен).
const (
	colProductID = "productid"
	colUserID    = "userid"
	colQuantity  = "quantity"
	colOrderDate = "orderdate"
)

// Допустимые форматы OrderDate, в порядке перебора.
var orderDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// columnIndex — позиции обязательных колонок в заголовке.
type columnIndex struct {
	productID int
	userID    int
	quantity  int
	orderDate int
}

// importRow — сырые значения одной строки данных до валидации.
type importRow struct {
	productID string
	userID    string
	quantity  string
	orderDate string
}

// ImportCsv — конвейер пакетного импорта заказов из CSV.
//
// Порядок работы:
//  1. читается заголовок; отсутствующий или нераспознанный заголовок эквивалентен
//     нулю строк данных (итог 0/0 без ошибок, НЕ ошибка вызова);
//  2. каталог товаров снимается ОДНИМ вызовом GetAll до цикла по строкам;
//  3. строки валидируются строго по порядку входа, номер с 1 (заголовок не считается);
//     отказ строки копится в итоге и не прерывает остальные;
//  4. если успешна хотя бы одна строка — единый bulk-insert всего пакета;
//     при нуле успешных вставка не вызывается.
//
// Между строками уважается отмена контекста: валидация полностью отвязана
// от персистентности, поэтому поздний отказ не может опустошить уже
// отправленный пакет.
func (s *OrderService) ImportCsv(ctx context.Context, r io.Reader) (*domain.ImportOutcome, error) {
	outcome := &domain.ImportOutcome{Errors: []domain.ImportError{}}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // короткие строки — построчный отказ, не сбой потока
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return outcome, nil // пустой файл — ноль строк данных
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCSVParse, err)
	}

	idx, ok := parseHeader(header)
	if !ok {
		s.log.Warnf(ctx, "csv import: unrecognized header %v, treating as zero rows", header)
		return outcome, nil
	}

	// Единый снимок каталога до цикла — один GetAll на весь импорт.
	products, err := s.products.GetAll(ctx)
	if err != nil {
		s.log.Errorf(ctx, "csv import: product snapshot failed: %v", err)
		return nil, err
	}
	known := make(map[int64]struct{}, len(products))
	for _, p := range products {
		known[p.ID] = struct{}{}
	}

	var batch []domain.Order
	line := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCSVParse, err)
		}
		line++

		order, reason := validateRow(rowFields(record, idx), known)
		if reason != "" {
			outcome.FailureCount++
			outcome.Errors = append(outcome.Errors, domain.ImportError{Line: line, Reason: reason})
			metrics.ImportRows.WithLabelValues("failure").Inc()
			continue
		}

		batch = append(batch, order)
		outcome.SuccessCount++
		metrics.ImportRows.WithLabelValues("success").Inc()
	}

	if len(batch) > 0 {
		if err := s.repo.AddOrders(ctx, batch); err != nil {
			s.log.Errorf(ctx, "csv import: bulk insert failed rows=%d err=%v", len(batch), err)
			return nil, err
		}
	}

	s.log.Infof(ctx, "csv import done success=%d failure=%d", outcome.SuccessCount, outcome.FailureCount)
	return outcome, nil
}

// parseHeader — найти позиции четырёх обязательных колонок.
// false, если хотя бы одна отсутствует (заголовок не распознан).
func parseHeader(header []string) (columnIndex, bool) {
	idx := columnIndex{productID: -1, userID: -1, quantity: -1, orderDate: -1}

	for i, name := range header {
		// BOM из файлов Windows-редакторов прилипает к первой колонке.
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF")))
		switch name {
		case colProductID:
			idx.productID = i
		case colUserID:
			idx.userID = i
		case colQuantity:
			idx.quantity = i
		case colOrderDate:
			idx.orderDate = i
		}
	}

	ok := idx.productID >= 0 && idx.userID >= 0 && idx.quantity >= 0 && idx.orderDate >= 0
	return idx, ok
}

// rowFields — значения обязательных полей строки; недостающая позиция — пустая строка.
func rowFields(record []string, idx columnIndex) importRow {
	at := func(i int) string {
		if i < len(record) {
			return record[i]
		}
		return ""
	}
	return importRow{
		productID: at(idx.productID),
		userID:    at(idx.userID),
		quantity:  at(idx.quantity),
		orderDate: at(idx.orderDate),
	}
}

// validateRow — терминальное состояние строки: заказ либо причина отказа.
// Порядок проверок: пустые поля -> формат ProductId -> существование товара ->
// формат остальных полей.
func validateRow(row importRow, known map[int64]struct{}) (domain.Order, string) {
	if isBlank(row.productID) || isBlank(row.userID) || isBlank(row.quantity) || isBlank(row.orderDate) {
		return domain.Order{}, "Missing required fields."
	}

	productID, err := strconv.ParseInt(strings.TrimSpace(row.productID), 10, 64)
	if err != nil {
		return domain.Order{}, formatReason(row.productID, "ProductId")
	}
	if _, exists := known[productID]; !exists {
		return domain.Order{}, "Product does not exist: " + strings.TrimSpace(row.productID) + "."
	}

	userID, err := strconv.ParseInt(strings.TrimSpace(row.userID), 10, 64)
	if err != nil {
		return domain.Order{}, formatReason(row.userID, "UserId")
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(row.quantity))
	if err != nil {
		return domain.Order{}, formatReason(row.quantity, "Quantity")
	}

	orderDate, ok := parseOrderDate(strings.TrimSpace(row.orderDate))
	if !ok {
		return domain.Order{}, formatReason(row.orderDate, "OrderDate")
	}

	return domain.Order{
		ProductID: productID,
		UserID:    userID,
		Quantity:  quantity,
		OrderDate: orderDate,
	}, ""
}

// formatReason — причина отказа разбора поля; фраза "is not in a correct format"
// сохранена: вызывающие стороны матчатся на неё.
func formatReason(value, field string) string {
	return fmt.Sprintf("Value %q for %s is not in a correct format.", strings.TrimSpace(value), field)
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

func parseOrderDate(raw string) (time.Time, bool) {
	for _, layout := range orderDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
