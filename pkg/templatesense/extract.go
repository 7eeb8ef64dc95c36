package templatesense

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/ukaji3/templatesense-go/internal/logger"
	"github.com/ukaji3/templatesense-go/pkg/templatesense/detect"
	"github.com/ukaji3/templatesense-go/pkg/templatesense/models"
	"github.com/ukaji3/templatesense-go/pkg/templatesense/parser"
	"golang.org/x/sync/errgroup"
)

// BuildSheetSummary reads one sheet from wb and runs header and table
// detection over it. A missing sheet fails with an *ExtractionError wrapping
// ErrSheetNotFound; an empty sheet yields a summary with no blocks.
func BuildSheetSummary(wb parser.Workbook, sheetName string, opts Options) (*models.SheetSummary, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	grid, err := loadGrid(wb, sheetName, opts)
	if err != nil {
		return nil, err
	}

	summary, err := SummarizeGrid(sheetName, grid, opts)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// loadGrid reads a sheet grid, clipped to its print areas when requested.
func loadGrid(wb parser.Workbook, sheetName string, opts Options) (models.Grid, error) {
	grid, err := wb.Grid(sheetName)
	if err != nil {
		return nil, err
	}
	if !opts.PrintAreaOnly {
		return grid, nil
	}
	p, ok := wb.(parser.PrintAreaProvider)
	if !ok {
		return grid, nil
	}
	areas := p.PrintAreas(sheetName)
	if len(areas) > 0 {
		logger.For("summary").Debug("clipping sheet to print areas", "sheet", sheetName, "areas", len(areas))
	}
	return grid.Clip(areas...), nil
}

// SummarizeGrid runs header and table detection over an already loaded grid.
func SummarizeGrid(sheetName string, grid models.Grid, opts Options) (models.SheetSummary, error) {
	headers, err := detect.DetectHeaderBlocks(grid, opts.Header)
	if err != nil {
		return models.SheetSummary{}, err
	}
	tables, err := detect.DetectTableBlocks(grid, opts.Table)
	if err != nil {
		return models.SheetSummary{}, err
	}

	if headers == nil {
		headers = []models.HeaderCandidateBlock{}
	}
	if tables == nil {
		tables = []models.TableCandidateBlock{}
	}
	if !opts.ShouldIncludeTableHeaders() {
		for i := range tables {
			tables[i].HeaderRow = nil
		}
	}

	logger.For("summary").Info("summarized sheet",
		"sheet", sheetName,
		"rows", grid.RowCount(),
		"cols", grid.ColCount(),
		"header_blocks", len(headers),
		"table_blocks", len(tables),
	)

	return models.SheetSummary{
		SheetName:    sheetName,
		RowCount:     grid.RowCount(),
		ColCount:     grid.ColCount(),
		HeaderBlocks: headers,
		TableBlocks:  tables,
	}, nil
}

// Summarize opens a workbook and summarizes its sheets. Grids are read one
// at a time because the reader owns the file handle; detection then runs
// concurrently on up to opts.WorkerCount() sheets. Sheet order is preserved.
func Summarize(ctx context.Context, path string, opts Options) (*models.WorkbookSummary, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	wb, err := parser.Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	summary, err := SummarizeWorkbook(ctx, wb, opts)
	if err != nil {
		return nil, err
	}
	summary.BookName = filepath.Base(path)
	return summary, nil
}

// SummarizeWorkbook summarizes the sheets of an open workbook.
func SummarizeWorkbook(ctx context.Context, wb parser.Workbook, opts Options) (*models.WorkbookSummary, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	names := opts.Sheets
	if len(names) == 0 {
		names = wb.SheetNames()
	}

	grids := make([]models.Grid, len(names))
	for i, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		grid, err := loadGrid(wb, name, opts)
		if err != nil {
			return nil, err
		}
		grids[i] = grid
	}

	sheets := make([]models.SheetSummary, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.WorkerCount())
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := SummarizeGrid(name, grids[i], opts)
			if err != nil {
				return fmt.Errorf("sheet %q: %w", name, err)
			}
			sheets[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger.For("summary").Info("summarized workbook", "run_id", runID, "sheets", len(sheets))

	return &models.WorkbookSummary{
		RunID:  runID,
		Sheets: sheets,
	}, nil
}
