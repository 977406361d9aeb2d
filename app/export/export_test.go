package export

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"taskboard/app/models"
)

var sample = []models.Task{
	{ID: 1, Title: "t1", Description: "d1, with comma", Status: models.StatusPending, Username: "alice"},
	{ID: 2, Title: "t2", Description: "d2", Status: models.StatusCompleted, Username: "alice"},
}

func TestJSON(t *testing.T) {
	b, err := Tasks(sample, "json")
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	var got []models.Task
	if err := json.Unmarshal(b, &got); err != nil || !reflect.DeepEqual(got, sample) {
		t.Fatalf("decoded %+v, %v", got, err)
	}
	empty, _ := Tasks(nil, "JSON")
	if string(empty) != "[]" {
		t.Fatalf("empty json = %s", empty)
	}
}

func TestCSV(t *testing.T) {
	b, err := Tasks(sample, "csv")
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 3 || lines[0] != "id,title,description,status,username" {
		t.Fatalf("csv = %q", b)
	}
	if lines[1] != `1,t1,"d1, with comma",pending,alice` {
		t.Fatalf("row = %q", lines[1])
	}
}

func TestPDF(t *testing.T) {
	for _, tasks := range [][]models.Task{sample, nil} {
		b, err := Tasks(tasks, "pdf")
		if err != nil {
			t.Fatalf("pdf: %v", err)
		}
		if !bytes.HasPrefix(b, []byte("%PDF-")) {
			t.Fatalf("not a pdf: %q", b[:min(len(b), 16)])
		}
	}
}

func TestUnknownFormat(t *testing.T) {
	if _, err := Tasks(sample, "xml"); err == nil {
		t.Fatal("expected error")
	}
}

