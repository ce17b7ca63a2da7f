package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartPublishAndEndWithErrorDoNotPanicOnNoopTracer(t *testing.T) {
	tracer := Tracer()
	ctx, span := StartPublish(context.Background(), tracer, "a/b", 1)
	assert.NotNil(t, ctx)
	EndWithError(span, nil)

	_, span2 := StartSubscribe(context.Background(), tracer, "a/b", 0)
	EndWithError(span2, errors.New("boom"))

	_, span3 := StartReconnect(context.Background(), tracer)
	EndWithError(span3, nil)
}
