package osutils

import "testing"

func TestCoreForWrapsAround(t *testing.T) {
	n := LogicalCores()
	if n < 1 {
		t.Fatalf("LogicalCores = %d", n)
	}
	for i := 0; i < 3*n; i++ {
		if got := CoreFor(i); got != i%n {
			t.Fatalf("CoreFor(%d) = %d, want %d", i, got, i%n)
		}
	}
}
