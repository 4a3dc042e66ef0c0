package main

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/foxxcyber/menu-board/internal/models"
)

// parseMenuCSV reads menu items from CSV. Recognized columns (case-insensitive):
// name_en (required), name_tr, name_ar, category_id, price, tags, variants.
// tags are separated by ";", variants are "Size:price" pairs separated by ";".
// Rows that cannot be parsed are returned as warnings and skipped.
func parseMenuCSV(reader io.Reader) ([]*models.CreateItemRequest, []string, error) {
	csvReader := csv.NewReader(bufio.NewReader(reader))
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	header, err := csvReader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colMap := make(map[string]int)
	for i, col := range header {
		colMap[strings.ToLower(strings.TrimSpace(col))] = i
	}
	if _, ok := colMap["name_en"]; !ok {
		return nil, nil, errors.New("CSV header must include name_en")
	}

	field := func(record []string, name string) string {
		i, ok := colMap[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var items []*models.CreateItemRequest
	var warnings []string
	line := 1
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		req := &models.CreateItemRequest{
			NameEN: field(record, "name_en"),
			NameTR: field(record, "name_tr"),
			NameAR: field(record, "name_ar"),
		}
		if req.NameEN == "" {
			warnings = append(warnings, fmt.Sprintf("line %d: missing name_en", line))
			continue
		}

		if cat := field(record, "category_id"); cat != "" {
			req.CategoryID = &cat
		}

		if raw := field(record, "price"); raw != "" {
			price, err := strconv.ParseFloat(raw, 64)
			if err != nil || price < 0 {
				warnings = append(warnings, fmt.Sprintf("line %d: invalid price %q", line, raw))
				continue
			}
			req.Price = price
		}

		if raw := field(record, "tags"); raw != "" {
			req.Tags = strings.Split(raw, ";")
		}

		if raw := field(record, "variants"); raw != "" {
			variants, err := parseVariants(raw)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("line %d: %v", line, err))
				continue
			}
			req.Variants = variants
		}

		req.Normalize()
		items = append(items, req)
	}

	return items, warnings, nil
}

func parseVariants(raw string) ([]models.Variant, error) {
	var variants []models.Variant
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		size, priceText, ok := strings.Cut(part, ":")
		if !ok || strings.TrimSpace(size) == "" {
			return nil, fmt.Errorf("invalid variant %q, want Size:price", part)
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(priceText), 64)
		if err != nil || price < 0 {
			return nil, fmt.Errorf("invalid variant price in %q", part)
		}
		variants = append(variants, models.Variant{Size: strings.TrimSpace(size), Price: price})
	}
	return variants, nil
}
