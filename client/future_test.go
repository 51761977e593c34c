package client_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/minff/geodata"
	"github.com/minff/geodata/client"
)

func TestFuture_CompletionBeforeWait(t *testing.T) {
	// The callback fires synchronously inside AsFuture, long before any
	// goroutine blocks on the result. The single-slot buffer holds it.
	future := client.AsFuture("req", func(_ string, cb client.Callback[int]) client.CancellationToken {
		cb(client.Ok(9))
		return client.CancellationToken{}
	})

	if v, err := future.GetResponse().Get(); err != nil || v != 9 {
		t.Fatalf("future resolved to (%v, %v), want (9, nil)", v, err)
	}
}

func TestFuture_CompletionOnAnotherGoroutine(t *testing.T) {
	release := make(chan struct{})
	future := client.AsFuture("req", func(_ string, cb client.Callback[int]) client.CancellationToken {
		go func() {
			<-release
			cb(client.Ok(3))
		}()
		return client.CancellationToken{}
	})

	close(release)
	if v, err := future.GetResponse().Get(); err != nil || v != 3 {
		t.Fatalf("future resolved to (%v, %v), want (3, nil)", v, err)
	}
}

func TestFuture_CancelForwardsToToken(t *testing.T) {
	cctx := client.NewCancellationContext()
	delivered := make(chan struct{})

	future := client.AsFuture("req", func(_ string, cb client.Callback[int]) client.CancellationToken {
		go func() {
			// Simulate cooperative work that observes cancellation.
			for !cctx.IsCancelled() {
				time.Sleep(time.Millisecond)
			}
			cb(client.Fail[int](geodata.ErrCancelled))
			close(delivered)
		}()
		return cctx.Token()
	})

	future.Cancel()
	resp := future.GetResponse()
	<-delivered

	if !errors.Is(resp.Err(), geodata.ErrCancelled) {
		t.Fatalf("resp.Err() = %v, want ErrCancelled", resp.Err())
	}
}

func TestFuture_GetResponseContext(t *testing.T) {
	future := client.AsFuture("req", func(_ string, cb client.Callback[int]) client.CancellationToken {
		// Never completes.
		return client.CancellationToken{}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := future.GetResponseContext(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want DeadlineExceeded", err)
	}
}
