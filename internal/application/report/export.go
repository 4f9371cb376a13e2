package report

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/agro/backend/internal/domain/producer"
	"github.com/agro/backend/internal/domain/report"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Sheet names of the exported workbook
const (
	SheetSummary   = "Resumo"
	SheetStates    = "Estados"
	SheetCrops     = "Culturas"
	SheetHarvests  = "Safras"
	SheetProducers = "Produtores"
)

// ExportXLSX writes the dashboard and the producer list as an Excel workbook.
// Both views come from the same snapshot.
func (s *DashboardService) ExportXLSX(ctx context.Context, w io.Writer) error {
	producers, err := s.repo.FindAllForSummary(ctx)
	if err != nil {
		return fmt.Errorf("load producers for export: %w", err)
	}
	summary := report.Summarize(producers)

	f, err := buildWorkbook(summary, producers)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.logger.Warn("Failed to close workbook", zap.Error(cerr))
		}
	}()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	s.logger.Info("Dashboard exported", zap.Int("producers", len(producers)))
	return nil
}

func buildWorkbook(summary *report.DashboardSummary, producers []producer.Producer) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, err
	}
	for _, name := range []string{SheetStates, SheetCrops, SheetHarvests, SheetProducers} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	w := sheetWriter{f: f, header: header}
	w.rows(SheetSummary, []string{"Indicador", "Valor"}, [][]interface{}{
		{"Total de fazendas", summary.TotalFarms},
		{"Área total (ha)", summary.TotalArea.InexactFloat64()},
		{"Área agricultável (ha)", summary.SoilUse.ArableArea.InexactFloat64()},
		{"Área de vegetação (ha)", summary.SoilUse.VegetationArea.InexactFloat64()},
	})

	states := make([][]interface{}, 0, len(summary.StateCount))
	for _, st := range sortedKeys(summary.StateCount) {
		states = append(states, []interface{}{st, summary.StateCount[st]})
	}
	w.rows(SheetStates, []string{"Estado", "Fazendas"}, states)

	crops := make([][]interface{}, 0, len(summary.CropCount))
	for _, c := range sortedKeys(summary.CropCount) {
		crops = append(crops, []interface{}{c, summary.CropCount[c]})
	}
	w.rows(SheetCrops, []string{"Cultura", "Fazendas"}, crops)

	years := make([]int, 0, len(summary.HarvestsByYear))
	for y := range summary.HarvestsByYear {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	harvests := make([][]interface{}, 0)
	for _, y := range years {
		for _, c := range sortedKeys(summary.HarvestsByYear[y]) {
			harvests = append(harvests, []interface{}{y, c, summary.HarvestsByYear[y][c]})
		}
	}
	w.rows(SheetHarvests, []string{"Ano", "Cultura", "Fazendas"}, harvests)

	list := make([][]interface{}, 0, len(producers))
	for i := range producers {
		p := &producers[i]
		list = append(list, []interface{}{
			p.Name,
			producer.FormatDocument(p.Document),
			p.FarmName,
			p.City,
			p.State,
			p.TotalArea.InexactFloat64(),
			p.ArableArea.InexactFloat64(),
			p.VegetationArea.InexactFloat64(),
			cropsLabel(p.Harvests),
		})
	}
	w.rows(SheetProducers, []string{
		"Produtor", "Documento", "Fazenda", "Cidade", "Estado",
		"Área total (ha)", "Área agricultável (ha)", "Área de vegetação (ha)", "Safras",
	}, list)

	if w.err != nil {
		return nil, w.err
	}
	f.SetActiveSheet(0)
	return f, nil
}

// sheetWriter keeps the first error so a sheet can be written without checking every call
type sheetWriter struct {
	f      *excelize.File
	header int
	err    error
}

func (w *sheetWriter) rows(sheet string, header []string, rows [][]interface{}) {
	if w.err != nil {
		return
	}
	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if w.err = w.f.SetSheetRow(sheet, "A1", &cells); w.err != nil {
		return
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		w.err = err
		return
	}
	if w.err = w.f.SetCellStyle(sheet, "A1", last, w.header); w.err != nil {
		return
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			w.err = err
			return
		}
		r := row
		if w.err = w.f.SetSheetRow(sheet, cell, &r); w.err != nil {
			return
		}
	}
}

func cropsLabel(harvests []producer.Harvest) string {
	parts := make([]string, 0, len(harvests))
	for _, h := range harvests {
		parts = append(parts, fmt.Sprintf("%d: %s", h.Year, strings.Join(h.CropNames(), ", ")))
	}
	return strings.Join(parts, "; ")
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
