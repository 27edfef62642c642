package tasklist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fhuszti/imgbatch/internal/model"
)

func TestRead(t *testing.T) {
	in := "index,task_type,prompt,ori_image\n" +
		"5,t2i,A red fox in snow,\n" +
		"7, TIE ,Make it watercolor, cat.jpg \n" +
		"9,other,ignored,\n"

	recs, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := []model.TaskRecord{
		{Row: 1, Index: "5", Type: model.TaskTypeT2I, Prompt: "A red fox in snow"},
		{Row: 2, Index: "7", Type: model.TaskTypeTIE, Prompt: "Make it watercolor", OriImage: "cat.jpg"},
		{Row: 3, Index: "9", Type: model.TaskTypeOther, Prompt: "ignored"},
	}
	if len(recs) != len(want) {
		t.Fatalf("got %d records, want %d", len(recs), len(want))
	}
	for i := range want {
		if recs[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, recs[i], want[i])
		}
	}
}

func TestRead_StripsBOM(t *testing.T) {
	in := "\ufeffindex,task_type,prompt\n1,t2i,hello\n"

	recs, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(recs) != 1 || recs[0].Index != "1" {
		t.Fatalf("BOM leaked into header, got %+v", recs)
	}
}

func TestRead_ShortRowsAndExtraColumns(t *testing.T) {
	in := "notes,index,task_type,prompt,ori_image\n" +
		"x,3,vttie\n"

	recs, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	got := recs[0]
	if got.Index != "3" || got.Type != model.TaskTypeVTTIE || got.Prompt != "" || got.OriImage != "" {
		t.Errorf("unexpected record %+v", got)
	}
}

func TestRead_QuotedPrompt(t *testing.T) {
	in := "index,task_type,prompt\n1,t2i,\"a cat, sitting\"\n"

	recs, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if recs[0].Prompt != "a cat, sitting" {
		t.Errorf("prompt = %q", recs[0].Prompt)
	}
}

func TestRead_MissingRequiredColumn(t *testing.T) {
	for _, in := range []string{
		"task_type,prompt\nt2i,x\n",
		"index,prompt\n1,x\n",
	} {
		if _, err := Read(strings.NewReader(in)); err == nil {
			t.Errorf("expected error for header %q", strings.SplitN(in, "\n", 2)[0])
		}
	}
}

func TestRead_Empty(t *testing.T) {
	if _, err := Read(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestRead_HeaderOnly(t *testing.T) {
	recs, err := Read(strings.NewReader("index,task_type,prompt,ori_image\n"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("got %d records, want 0", len(recs))
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "task.csv")
	if err := os.WriteFile(path, []byte("index,task_type,prompt\n1,t2i,hi\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	recs, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(recs) != 1 {
		t.Errorf("got %d records, want 1", len(recs))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}
