package accounts

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrijs2005/refundport/internal/common"
)

func TestMemoryGetPutExists(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	if _, err := r.Get(ctx, "a@x.com"); !errors.Is(err, common.ErrAccountNotFound) {
		t.Fatalf("want ErrAccountNotFound, got %v", err)
	}

	if err := r.Put(ctx, testAccount("a@x.com")); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, err := r.Get(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Email != "a@x.com" {
		t.Fatalf("unexpected account: %+v", got)
	}

	ok, err := r.Exists(ctx, "a@x.com")
	if err != nil || !ok {
		t.Fatalf("expected exists=true, got %v/%v", ok, err)
	}
}

func TestMemoryGet_ReturnsCopy(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	if err := r.Put(ctx, testAccount("a@x.com")); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	first, _ := r.Get(ctx, "a@x.com")
	first.Cipher[0] = 0xff

	second, _ := r.Get(ctx, "a@x.com")
	if second.Cipher[0] == 0xff {
		t.Fatalf("mutating a returned account leaked into the store")
	}
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			email := string(rune('a'+n%4)) + "@x.com"
			_ = r.Put(ctx, testAccount(email))
			_, _ = r.Get(ctx, email)
			_, _ = r.Exists(ctx, email)
		}(i)
	}
	wg.Wait()
}
