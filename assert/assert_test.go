package assert

import (
	"testing"

	"github.com/oomph-ac/motion/oerror"
)

func TestIsTruePanicsWithMotionError(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected a panic")
		}
		err, ok := r.(*oerror.MotionError)
		if !ok {
			t.Fatalf("expected *oerror.MotionError, got %T", r)
		}
		if err.Error() != "bad value 3" {
			t.Fatalf("unexpected message %q", err.Error())
		}
	}()
	IsTrue(false, "bad value %d", 3)
}

func TestIsTrueNoPanic(t *testing.T) {
	IsTrue(true, "never shown")
}
