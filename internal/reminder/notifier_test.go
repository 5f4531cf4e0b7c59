package reminder

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"billfold/internal/amqp"
	"billfold/internal/metrics"
)

func TestNotifierHandle(t *testing.T) {
	n := NewNotifier()
	before := testutil.ToFloat64(metrics.RemindersDelivered)

	msg := amqp.NewReminderDueMessage(1, 1, "Rent due", "high", time.Now())
	if err := n.Handle(msg); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if got := testutil.ToFloat64(metrics.RemindersDelivered) - before; got != 1 {
		t.Errorf("delivered counter delta = %v, want 1", got)
	}
}

func TestNotifierHandle_NilMessage(t *testing.T) {
	n := NewNotifier()
	if err := n.Handle(nil); err == nil {
		t.Error("nil message should not be acknowledged")
	}
}
