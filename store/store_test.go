package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/kr/pretty"

	"github.com/massmola/compiler/eval"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "drawings.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGet(t *testing.T) {
	s := openStore(t)
	created := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	d := &Drawing{
		Name:   "house",
		Source: `RECT(0, 0, 10, 10, "red"); LINE(0, 10, 5, 15, "black");`,
		Commands: []eval.Command{
			eval.RectCmd{X: 0, Y: 0, W: 10, H: 10, Fill: "red"},
			eval.LineCmd{X1: 0, Y1: 10, X2: 5, Y2: 15.5, Stroke: "black"},
		},
		Created: created,
	}
	if err := s.Put(d); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.Get("house")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.Created.Equal(created) {
		t.Errorf("expected created=%s, got=%s", created, got.Created)
	}
	got.Created = created
	if diff := pretty.Diff(got, d); len(diff) != 0 {
		t.Errorf("unexpected drawing:\n%s", pretty.Sprint(diff))
	}
}

func TestListDelete(t *testing.T) {
	s := openStore(t)
	for _, name := range []string{"b", "a", "c"} {
		if err := s.Put(&Drawing{Name: name}); err != nil {
			t.Fatalf("Put(%s): %v", name, err)
		}
	}
	names, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if diff := pretty.Diff(names, []string{"a", "b", "c"}); len(diff) != 0 {
		t.Errorf("unexpected names:\n%s", pretty.Sprint(diff))
	}

	if err := s.Delete("b"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get("b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got=%v", err)
	}
	if err := s.Delete("b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got=%v", err)
	}
}

func TestPutReplaces(t *testing.T) {
	s := openStore(t)
	s.Put(&Drawing{Name: "x", Source: "old"})
	s.Put(&Drawing{Name: "x", Source: "new"})
	d, err := s.Get("x")
	if err != nil || d.Source != "new" {
		t.Errorf("expected the newer drawing, got=%v (%v)", d, err)
	}
	if err := s.Put(&Drawing{}); err == nil {
		t.Errorf("expected an error for a drawing without a name")
	}
}

func TestDecodeUnknownKind(t *testing.T) {
	_, err := decode([]byte(`{"name":"x","commands":[{"kind":"circle","args":[0,0,0,0],"color":"red"}]}`))
	if err == nil {
		t.Errorf("expected an error for an unknown command kind")
	}
}
