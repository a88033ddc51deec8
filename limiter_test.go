package affliora

import (
	"testing"
	"time"
)

func TestLoginLimiterCheck(t *testing.T) {
	l := NewLoginLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Check("1.2.3.4") {
			t.Fatalf("failure %d: expected Check to pass", i)
		}
		l.Record("1.2.3.4")
	}
	if l.Check("1.2.3.4") {
		t.Error("expected Check to fail after max failures")
	}
	if !l.Check("5.6.7.8") {
		t.Error("expected different IP to pass")
	}
}

func TestLoginLimiterWindowExpiry(t *testing.T) {
	l := NewLoginLimiter(1, 10*time.Millisecond)

	l.Record("1.2.3.4")
	if l.Check("1.2.3.4") {
		t.Error("expected Check to fail inside window")
	}

	time.Sleep(20 * time.Millisecond)
	if !l.Check("1.2.3.4") {
		t.Error("expected Check to pass after window expiry")
	}
}
