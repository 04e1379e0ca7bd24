package assert

import "github.com/oomph-ac/motion/oerror"

// IsTrue panics with a formatted error if ok is false.
func IsTrue(ok bool, message string, args ...any) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
