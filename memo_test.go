package lrufile

import (
	"errors"
	"fmt"
	"testing"

	c "github.com/josh/lrufile/codec"
)

func TestMemoize(t *testing.T) {
	cc, err := Open[int, string](Options[int, string]{
		Path:   testPath(t),
		Keys:   c.JSON[int]{},
		Values: c.String{},
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer cc.Close()

	calls := 0
	expensive := Memoize(cc, func(n int) (string, error) {
		calls++
		if n < 0 {
			return "", errors.New("negative")
		}
		return fmt.Sprintf("result-%d", n), nil
	})

	for i := 0; i < 3; i++ {
		got, err := expensive(7)
		if err != nil || got != "result-7" {
			t.Fatalf("call %d: got %q err=%v", i, got, err)
		}
	}
	if calls != 1 {
		t.Fatalf("fn called %d times for one argument, want 1", calls)
	}

	if _, err := expensive(-1); err == nil {
		t.Fatalf("expected error for negative argument")
	}
	if _, err := expensive(-1); err == nil {
		t.Fatalf("errors must not be cached")
	}
	if calls != 3 {
		t.Fatalf("fn called %d times, want 3 (one hit-producing call, two failures)", calls)
	}
}

func TestMemoizeSurvivesRestart(t *testing.T) {
	path := testPath(t)
	open := func() Cache[int, string] {
		cc, err := Open[int, string](Options[int, string]{
			Path:   path,
			Keys:   c.JSON[int]{},
			Values: c.String{},
		})
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		return cc
	}

	cc := open()
	calls := 0
	fn := func(n int) (string, error) {
		calls++
		return fmt.Sprintf("v%d", n), nil
	}
	if _, err := Memoize(cc, fn)(42); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if err := cc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	cc = open()
	defer cc.Close()
	got, err := Memoize(cc, fn)(42)
	if err != nil || got != "v42" {
		t.Fatalf("after restart: got %q err=%v", got, err)
	}
	if calls != 1 {
		t.Fatalf("fn recomputed after restart, calls=%d", calls)
	}
}
