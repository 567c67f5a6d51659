package fanout

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/mmcdole/shelf/internal/log"
)

func TestPagesConcatenatesInPageOrder(t *testing.T) {
	got, err := Pages(context.Background(), 1, 3, func(_ context.Context, page int) ([]string, error) {
		return []string{fmt.Sprintf("p%d-a", page), fmt.Sprintf("p%d-b", page)}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"p1-a", "p1-b", "p2-a", "p2-b", "p3-a", "p3-b"}
	if len(got) != len(want) {
		t.Fatalf("got %d items, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPagesPropagatesFailure(t *testing.T) {
	boom := errors.New("page exploded")
	_, err := Pages(context.Background(), 1, 3, func(_ context.Context, page int) ([]int, error) {
		if page == 2 {
			return nil, boom
		}
		return []int{page}, nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected page error, got %v", err)
	}
}

func TestPagesEmptyRange(t *testing.T) {
	var calls atomic.Int32
	got, err := Pages(context.Background(), 2, 1, func(context.Context, int) ([]int, error) {
		calls.Add(1)
		return []int{1}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected no items, got %v", got)
	}
	if calls.Load() != 0 {
		t.Errorf("expected no fetches, got %d", calls.Load())
	}
}

func TestGatherToleratesFailure(t *testing.T) {
	tasks := []func(ctx context.Context) ([]int, error){
		func(context.Context) ([]int, error) { return []int{1}, nil },
		func(context.Context) ([]int, error) { return nil, errors.New("down") },
		func(context.Context) ([]int, error) { return []int{3}, nil },
	}

	got := Gather(context.Background(), log.NullLogger(), "test", tasks)
	if len(got) != 3 {
		t.Fatalf("got %d results, want 3", len(got))
	}
	if len(got[0]) != 1 || got[0][0] != 1 {
		t.Errorf("task 0 result = %v, want [1]", got[0])
	}
	if got[1] != nil {
		t.Errorf("failed task result = %v, want nil", got[1])
	}
	if len(got[2]) != 1 || got[2][0] != 3 {
		t.Errorf("task 2 result = %v, want [3]", got[2])
	}
}

func TestGatherRunsEveryTask(t *testing.T) {
	var calls atomic.Int32
	tasks := make([]func(ctx context.Context) (int, error), 8)
	for i := range tasks {
		tasks[i] = func(context.Context) (int, error) {
			calls.Add(1)
			return i, nil
		}
	}

	got := Gather(context.Background(), log.NullLogger(), "test", tasks)
	if calls.Load() != 8 {
		t.Fatalf("expected 8 task invocations, got %d", calls.Load())
	}
	for i, v := range got {
		if v != i {
			t.Errorf("result %d = %d, want %d", i, v, i)
		}
	}
}
