package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/nick-dorsch/ticklist/pkg/models"
)

// Formats lists the supported export formats.
var Formats = []string{"json", "csv", "markdown", "pdf"}

// Export writes tasks to w in the given format.
func Export(w io.Writer, tasks []models.Task, format string) error {
	switch strings.ToLower(format) {
	case "json":
		return exportJSON(w, tasks)
	case "csv":
		return exportCSV(w, tasks)
	case "markdown", "md":
		return exportMarkdown(w, tasks)
	case "pdf":
		return exportPDF(w, tasks)
	}
	return fmt.Errorf("unknown format %s (want one of %s)", format, strings.Join(Formats, ", "))
}

func exportJSON(w io.Writer, tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tasks)
}

func exportCSV(w io.Writer, tasks []models.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "text", "completed"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, t := range tasks {
		if err := cw.Write([]string{strconv.FormatInt(t.ID, 10), t.Text, strconv.FormatBool(t.Completed)}); err != nil {
			return fmt.Errorf("failed to write task %d: %w", t.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func exportMarkdown(w io.Writer, tasks []models.Task) error {
	var b strings.Builder
	b.WriteString("# To-Do List\n\n")
	for _, t := range tasks {
		box := " "
		if t.Completed {
			box = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s\n", box, t.Text)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func exportPDF(w io.Writer, tasks []models.Task) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "To-Do List")
	pdf.Ln(12)

	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 6, fmt.Sprintf("%d tasks, %d completed", len(tasks), done))
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 11)
	for _, t := range tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		pdf.MultiCell(0, 6, tr(box+" "+t.Text), "0", "L", false)
	}

	return pdf.Output(w)
}
