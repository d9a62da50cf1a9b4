package stacktrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternalPaths(t *testing.T) {
	stack := []byte(`goroutine 7 [running]:
runtime/debug.Stack()
	/usr/local/go/src/runtime/debug/stack.go:26 +0x5e
github.com/shandysiswandi/elasticmail/internal/pkg/messaging.callHandlerWithRecover.func1()
	/src/elasticmail/internal/pkg/messaging/recover.go:14 +0x4b
panic({0x1, 0x2})
	/usr/local/go/src/runtime/panic.go:791 +0x132
github.com/shandysiswandi/elasticmail/internal/elasticemail/usecase.(*Usecase).Send(...)
	/src/elasticmail/internal/elasticemail/usecase/send.go:42
`)

	assert.Equal(t, []string{
		"internal/pkg/messaging/recover.go:14",
		"internal/elasticemail/usecase/send.go:42",
	}, InternalPaths(stack))
}

func TestInternalPaths_NoInternalFrames(t *testing.T) {
	assert.Empty(t, InternalPaths([]byte("goroutine 1 [running]:\nmain.main()\n\t/src/main.go:5 +0x1\n")))
}
