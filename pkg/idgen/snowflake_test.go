package idgen

import (
	"strings"
	"sync"
	"testing"
)

func TestNextIDUnique(t *testing.T) {
	Init(1)

	const goroutines = 8
	const perGoroutine = 2000

	var mu sync.Mutex
	seen := make(map[int64]struct{}, goroutines*perGoroutine)
	var wg sync.WaitGroup

	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids := make([]int64, 0, perGoroutine)
			for i := 0; i < perGoroutine; i++ {
				ids = append(ids, NextID())
			}
			mu.Lock()
			defer mu.Unlock()
			for _, id := range ids {
				if _, ok := seen[id]; ok {
					t.Errorf("重复ID: %d", id)
				}
				seen[id] = struct{}{}
			}
		}()
	}
	wg.Wait()

	if len(seen) != goroutines*perGoroutine {
		t.Errorf("期望 %d 个唯一ID，实际 %d", goroutines*perGoroutine, len(seen))
	}
}

func TestGeneratePaymentReference(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		ref := GeneratePaymentReference(7)
		if !strings.HasPrefix(ref, "PAY") {
			t.Fatalf("参考号前缀错误: %s", ref)
		}
		if _, ok := seen[ref]; ok {
			t.Fatalf("重复参考号: %s", ref)
		}
		seen[ref] = struct{}{}
	}
}

func TestGenerateTransactionNo(t *testing.T) {
	a := GenerateTransactionNo()
	b := GenerateTransactionNo()

	if !strings.HasPrefix(a, "TXN") || !strings.HasPrefix(b, "TXN") {
		t.Fatalf("流水号前缀错误: %s / %s", a, b)
	}
	if a == b {
		t.Fatalf("连续生成的流水号重复: %s", a)
	}
}
