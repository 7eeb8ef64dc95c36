package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeInvoice(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]any{
		{"Invoice Number: 12345", "Date: 2024-01-01"},
		{"Company: ABC Corp", "Address: 123 Main St"},
		{nil, nil},
		{"Item", "Quantity", "Price"},
		{"Widget A", 10, 25.5, 255.0},
		{"Widget B", 5, 12.0, 60.0},
		{"Gadget", 2, 100.0, 200.0},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}
	path := filepath.Join(dir, "invoice.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) []byte {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("templatesense %v failed: %v", args, err)
	}
	return out.Bytes()
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", dir)

	path := writeInvoice(t, dir)
	dictPath := filepath.Join(dir, "fields.yaml")
	if err := os.WriteFile(dictPath, []byte("invoice_number:\n  - Invoice Number\nissue_date:\n  - Date\n"), 0o644); err != nil {
		t.Fatalf("Failed to write dictionary: %v", err)
	}

	t.Run("summary", func(t *testing.T) {
		var summary struct {
			Sheets []struct {
				SheetName   string `json:"sheet_name"`
				TableBlocks []struct {
					RowStart int `json:"row_start"`
				} `json:"table_blocks"`
			} `json:"sheets"`
		}
		if err := json.Unmarshal(execute(t, "summary", path, "--log-level", "error"), &summary); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(summary.Sheets) != 1 || len(summary.Sheets[0].TableBlocks) != 1 || summary.Sheets[0].TableBlocks[0].RowStart != 4 {
			t.Errorf("unexpected summary %+v", summary)
		}
	})

	t.Run("payload", func(t *testing.T) {
		var payloads []map[string]any
		if err := json.Unmarshal(execute(t, "payload", path, "-d", dictPath, "--log-level", "error"), &payloads); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(payloads) != 1 || payloads[0]["sheet_name"] != "Sheet1" {
			t.Errorf("unexpected payloads %v", payloads)
		}
	})

	t.Run("match", func(t *testing.T) {
		var results []map[string]any
		if err := json.Unmarshal(execute(t, "match", "-d", dictPath, "INVOICE NUMBER", "--log-level", "error"), &results); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(results) != 1 || results[0]["canonical_key"] != "invoice_number" {
			t.Errorf("unexpected results %v", results)
		}
	})

	t.Run("sheets", func(t *testing.T) {
		var infos []sheetInfo
		if err := json.Unmarshal(execute(t, "sheets", path, "--log-level", "error"), &infos); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(infos) != 1 || infos[0].Name != "Sheet1" || infos[0].UsedRange != "A1:D7" {
			t.Errorf("unexpected sheets %+v", infos)
		}
	})

	t.Run("output file", func(t *testing.T) {
		t.Cleanup(func() { outputPath = "" })

		outPath := filepath.Join(dir, "sheets.json")
		if out := execute(t, "sheets", path, "-o", outPath, "--log-level", "error"); len(out) != 0 {
			t.Errorf("stdout = %q, expected nothing when --output is set", out)
		}
		data, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatalf("output file not written: %v", err)
		}
		var infos []sheetInfo
		if err := json.Unmarshal(data, &infos); err != nil || len(infos) != 1 {
			t.Errorf("output file = %q, expected one sheet (err %v)", data, err)
		}

		rootCmd.SetArgs([]string{"sheets", path, "-o", filepath.Join(dir, "missing", "out.json"), "--log-level", "error"})
		if err := rootCmd.Execute(); err == nil {
			t.Error("expected error for an unwritable output path")
		}
	})
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
