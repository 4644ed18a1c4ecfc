package fetch

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestGo_DeliversResult(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := NewCoordinator[string]()
	c.Go(context.Background(), func(ctx context.Context) (string, error) {
		return "data", nil
	})

	select {
	case r := <-c.Updates():
		if r.Err != nil || r.Value != "data" {
			t.Fatalf("result = %+v", r)
		}
	case <-time.After(time.Second):
		t.Fatal("no result delivered")
	}
}

func TestGo_RefreshSupersedesStaleFetch(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := NewCoordinator[string]()
	releaseA := make(chan struct{})
	aDone := make(chan struct{})

	// Fetch A hangs until released.
	c.Go(context.Background(), func(ctx context.Context) (string, error) {
		defer close(aDone)
		<-releaseA
		return "A", nil
	})
	// Fetch B is issued before A resolves and wins immediately.
	c.Go(context.Background(), func(ctx context.Context) (string, error) {
		return "B", nil
	})

	var got Result[string]
	select {
	case got = <-c.Updates():
	case <-time.After(time.Second):
		t.Fatal("no result delivered")
	}
	if got.Value != "B" {
		t.Fatalf("delivered %q, want B", got.Value)
	}

	// Let A finish late: its result must be discarded, not delivered.
	close(releaseA)
	<-aDone
	select {
	case r := <-c.Updates():
		t.Fatalf("stale result delivered: %+v", r)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestGo_SupersededFetchIsCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := NewCoordinator[int]()
	cancelled := make(chan struct{})

	c.Go(context.Background(), func(ctx context.Context) (int, error) {
		<-ctx.Done()
		close(cancelled)
		return 0, ctx.Err()
	})
	c.Go(context.Background(), func(ctx context.Context) (int, error) {
		return 7, nil
	})

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("superseded fetch was not cancelled")
	}

	r := <-c.Updates()
	if r.Value != 7 {
		t.Fatalf("result = %+v, want 7", r)
	}
}

func TestGo_LastWriteWinsWhenUnread(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := NewCoordinator[int]()
	for i := 1; i <= 3; i++ {
		c.Go(context.Background(), func(ctx context.Context) (int, error) {
			return i, nil
		})
		// Give each fetch time to publish before the next supersedes it.
		time.Sleep(20 * time.Millisecond)
	}

	r := <-c.Updates()
	if r.Value != 3 {
		t.Fatalf("unread results must be replaced, got %d", r.Value)
	}
}

func TestStop_DiscardsInFlightResult(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := NewCoordinator[string]()
	done := make(chan struct{})
	c.Go(context.Background(), func(ctx context.Context) (string, error) {
		defer close(done)
		<-ctx.Done()
		return "", ctx.Err()
	})

	c.Stop()
	<-done

	select {
	case r := <-c.Updates():
		t.Fatalf("result delivered after Stop: %+v", r)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestGo_ErrorsPropagate(t *testing.T) {
	defer goleak.VerifyNone(t)

	boom := errors.New("boom")
	c := NewCoordinator[string]()
	c.Go(context.Background(), func(ctx context.Context) (string, error) {
		return "", boom
	})

	r := <-c.Updates()
	if !errors.Is(r.Err, boom) {
		t.Fatalf("err = %v, want boom", r.Err)
	}
}
