// Package batch imports many law records from a CSV export in one call.
//
// Parsing is a naive line/comma split with no quote or escape support: a
// comma inside a field shifts every following column. This limitation is
// carried over from the legacy importer whose exports never quote fields;
// fixing it would change which historical files import cleanly.
//
// Rows are processed strictly sequentially in input order. Each row runs a
// metadata upsert and then a compendium link; a failing row is recorded in
// the report and never aborts the batch. Full-text blobs are not
// transferred during batch import — operators follow up per record.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"lexgate/internal/law/linker"
	"lexgate/internal/law/models"
	"lexgate/internal/law/upsert"
	"lexgate/internal/platform/audit"
	"lexgate/internal/platform/middleware"
	"lexgate/pkg/faults"
)

// Expected CSV columns, as emitted by the legacy admin export.
const (
	columnID         = "Id"
	columnTitle      = "title"
	columnState      = "jurisdiction"
	columnSource     = "source"
	columnReformDate = "last_reform_date"
)

// Importer runs batch CSV imports through the single-record pipeline.
type Importer struct {
	orch   *upsert.Orchestrator
	linker *linker.Linker
	audit  *audit.Publisher
	logger *slog.Logger
}

// New builds an Importer. publisher may be nil.
func New(orch *upsert.Orchestrator, l *linker.Linker, publisher *audit.Publisher, logger *slog.Logger) *Importer {
	return &Importer{orch: orch, linker: l, audit: publisher, logger: logger}
}

// Import parses the CSV and ingests every row against the given compendium.
// The only outright failure is a batch with no data rows; everything else
// is reported per row.
func (i *Importer) Import(ctx context.Context, csv []byte, compendiumID string) (*models.BatchReport, error) {
	if strings.TrimSpace(compendiumID) == "" {
		return nil, faults.New(faults.CodeValidation, "compendium id must not be empty")
	}

	header, rows := split(csv)
	if len(rows) == 0 {
		return nil, faults.New(faults.CodeValidation, "batch contains no data rows")
	}
	columns := indexColumns(header)

	report := &models.BatchReport{Rows: make([]models.RowResult, 0, len(rows))}
	for n, row := range rows {
		result := i.importRow(ctx, columns, row, compendiumID)
		if result.Valid {
			report.SuccessCount++
		} else {
			report.ErrorCount++
			i.logger.WarnContext(ctx, "batch row failed",
				"row", n+1,
				"law_id", result.LawID,
				"errors", strings.Join(result.Errors, "; "),
			)
		}
		report.Rows = append(report.Rows, result)
	}

	if i.audit != nil {
		i.audit.Emit(audit.Event{
			Action:       audit.ActionBatchCompleted,
			CompendiumID: compendiumID,
			OperatorID:   middleware.GetOperatorID(ctx),
			RequestID:    middleware.GetRequestID(ctx),
			Detail:       fmt.Sprintf("%d succeeded, %d failed", report.SuccessCount, report.ErrorCount),
		})
	}
	return report, nil
}

func (i *Importer) importRow(ctx context.Context, columns map[string]int, row []string, compendiumID string) models.RowResult {
	req := models.UpsertLawRequest{
		ID:             field(columns, row, columnID),
		Title:          field(columns, row, columnTitle),
		Jurisdiction:   field(columns, row, columnState),
		Source:         field(columns, row, columnSource),
		LastReformDate: field(columns, row, columnReformDate),
	}
	// Legacy leniency: a malformed reform date does not fail the row, it
	// is coerced to the sentinel fallback.
	if _, ok := models.ParseReformDate(req.LastReformDate); !ok {
		req.LastReformDate = models.FallbackReformDate
	}

	result := models.RowResult{LawID: req.ID, Valid: true}

	if _, _, err := i.orch.SubmitMetadata(ctx, req); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	if _, err := i.linker.Link(ctx, compendiumID, req.ID); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
	}
	return result
}

// split breaks the raw CSV into a header row and data rows. Blank lines are
// dropped wherever they appear. No quoting: every comma is a delimiter.
func split(csv []byte) (header []string, rows [][]string) {
	for _, line := range strings.Split(string(csv), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := strings.Split(line, ",")
		for n, cell := range cells {
			cells[n] = strings.TrimSpace(cell)
		}
		if header == nil {
			header = cells
			continue
		}
		rows = append(rows, cells)
	}
	return header, rows
}

func indexColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for n, name := range header {
		columns[name] = n
	}
	return columns
}

// field returns the named cell, or "" when the column is missing or the
// row is too short. Absent values fail the row's validation downstream.
func field(columns map[string]int, row []string, name string) string {
	n, ok := columns[name]
	if !ok || n >= len(row) {
		return ""
	}
	return row[n]
}
