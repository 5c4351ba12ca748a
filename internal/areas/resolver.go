// Package areas parses the externally managed configuration sheets: the area
// table (name, destination tab, active flag, quota) and the single-column
// neighborhood list. Both are re-read on every operation, so parsing works on
// raw row data and keeps no state.
package areas

import (
	"fmt"
	"strings"

	"github.com/ArielAmzalak/SenhasGF4/internal/format"
	"github.com/ArielAmzalak/SenhasGF4/internal/models"
)

// Header synonyms accepted for each logical column, matched case- and
// accent-insensitively. Order matters: the first synonym found wins.
var (
	areaSynonyms   = []string{"Área", "Area", "Setor", "Mesa", "Área/Setor"}
	sheetSynonyms  = []string{"Aba", "Sheet", "AbaDestino", "Aba Destino", "Destino", "Guia", "Tab"}
	activeSynonyms = []string{"Ativa", "Ativo", "Status", "Habilitada", "Disponível"}
	maxSynonyms    = []string{"Quantidade máxima de senhas", "Qtd máxima", "Qtd Senhas", "Limite"}

	neighborhoodHeaders = map[string]struct{}{
		"nome do bairro": {},
		"bairro":         {},
	}
)

// ResolveActive parses the area configuration table (header row first) and
// returns the areas whose active flag is truthy. A row without a destination
// tab falls back to the area name; a row without an active cell defaults to
// active. Fails when no area-name column can be matched.
func ResolveActive(rows [][]string) ([]models.Area, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	header := rows[0]
	areaIdx := findColumn(header, areaSynonyms)
	sheetIdx := findColumn(header, sheetSynonyms)
	activeIdx := findColumn(header, activeSynonyms)
	maxIdx := findColumn(header, maxSynonyms)

	if areaIdx < 0 {
		return nil, fmt.Errorf("%w: area column not found in configuration sheet", models.ErrConfiguration)
	}

	var active []models.Area
	for _, row := range rows[1:] {
		name := trimCell(row, areaIdx)
		if name == "" {
			continue
		}
		sheet := trimCell(row, sheetIdx)
		if sheet == "" {
			sheet = name
		}
		enabled := true
		if activeIdx >= 0 && activeIdx < len(row) {
			enabled = format.Truthy(row[activeIdx])
		}
		if !enabled {
			continue
		}
		active = append(active, models.Area{
			Name:       name,
			Sheet:      sheet,
			Active:     true,
			MaxTickets: format.PositiveInt(cell(row, maxIdx)),
		})
	}
	return active, nil
}

// Neighborhoods returns the non-empty values of a single-column table in
// source order, skipping the first cell only when it is a known header label.
func Neighborhoods(rows [][]string) []string {
	var out []string
	for i, row := range rows {
		name := trimCell(row, 0)
		if name == "" {
			continue
		}
		if i == 0 {
			if _, isHeader := neighborhoodHeaders[format.Fold(name)]; isHeader {
				continue
			}
		}
		out = append(out, name)
	}
	return out
}

func findColumn(header []string, synonyms []string) int {
	folded := make([]string, len(header))
	for i, h := range header {
		folded[i] = format.Fold(h)
	}
	for _, want := range synonyms {
		wantFolded := format.Fold(want)
		for i, col := range folded {
			if col == wantFolded {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func trimCell(row []string, idx int) string {
	return strings.TrimSpace(cell(row, idx))
}
