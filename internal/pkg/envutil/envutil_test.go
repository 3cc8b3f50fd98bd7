package envutil

import (
	"testing"
	"time"
)

func TestIntAndBool(t *testing.T) {
	t.Setenv("SOT_TEST_INT", "42")
	t.Setenv("SOT_TEST_BAD_INT", "abc")
	t.Setenv("SOT_TEST_BOOL", "on")

	if got := Int("SOT_TEST_INT", 1, nil); got != 42 {
		t.Fatalf("Int: got=%d", got)
	}
	if got := Int("SOT_TEST_BAD_INT", 7, nil); got != 7 {
		t.Fatalf("Int fallback: got=%d", got)
	}
	if got := Bool("SOT_TEST_BOOL", false, nil); !got {
		t.Fatalf("Bool: got=false")
	}
	if got := Bool("SOT_TEST_MISSING_BOOL", true, nil); !got {
		t.Fatalf("Bool default: got=false")
	}
}

func TestSecondsRejectsNonPositive(t *testing.T) {
	t.Setenv("SOT_TEST_SECS", "0")
	if got := Seconds("SOT_TEST_SECS", 3*time.Second, nil); got != 3*time.Second {
		t.Fatalf("Seconds: got=%s", got)
	}
	t.Setenv("SOT_TEST_SECS", "12")
	if got := Seconds("SOT_TEST_SECS", 3*time.Second, nil); got != 12*time.Second {
		t.Fatalf("Seconds: got=%s", got)
	}
}

func TestFloat(t *testing.T) {
	t.Setenv("SOT_TEST_FLOAT", "0.25")
	t.Setenv("SOT_TEST_BAD_FLOAT", "half")
	if got := Float("SOT_TEST_FLOAT", 1, nil); got != 0.25 {
		t.Fatalf("Float: got=%v", got)
	}
	if got := Float("SOT_TEST_BAD_FLOAT", 1, nil); got != 1 {
		t.Fatalf("Float fallback: got=%v", got)
	}
}
