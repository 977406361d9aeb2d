// Package export renders a task list as json, csv or pdf.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"taskboard/app/models"

	"github.com/jung-kurt/gofpdf"
)

// Formats lists the supported export formats.
var Formats = []string{"json", "csv", "pdf"}

// Tasks renders tasks in the given format.
func Tasks(tasks []models.Task, format string) ([]byte, error) {
	if tasks == nil {
		tasks = []models.Task{}
	}
	switch strings.ToLower(format) {
	case "json":
		return json.MarshalIndent(tasks, "", "  ")
	case "csv":
		var b bytes.Buffer
		w := csv.NewWriter(&b)
		_ = w.Write([]string{"id", "title", "description", "status", "username"})
		for _, t := range tasks {
			_ = w.Write([]string{strconv.Itoa(t.ID), t.Title, t.Description, t.Status, t.Username})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
		return b.Bytes(), nil
	case "pdf":
		return pdf(tasks)
	default:
		return nil, fmt.Errorf("unknown format %s", format)
	}
}

func pdf(tasks []models.Task) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()
	doc.SetFont("Arial", "B", 14)
	doc.Cell(40, 10, "Tasks")
	doc.Ln(12)
	doc.SetFont("Arial", "", 10)
	if len(tasks) == 0 {
		doc.Cell(40, 6, "No tasks found.")
	}
	for _, t := range tasks {
		line := fmt.Sprintf("#%d [%s] %s - %s (%s)", t.ID, t.Status, t.Title, t.Description, t.Username)
		doc.MultiCell(0, 6, tr(line), "0", "L", false)
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
