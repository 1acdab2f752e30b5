package marklog

import (
	"runtime"

	"pkt.systems/marklog/render"
)

// CurrentFn returns the name of the calling function without package path.
// If the caller cannot be determined it returns "unknown".
func CurrentFn() string {
	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		return render.FunctionNameForPC(0)
	}
	return render.FunctionNameForPC(pc)
}
