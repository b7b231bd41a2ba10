package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "tagged", err: NotFound(base, "table not found: X"), want: KindNotFound},
		{name: "wrapped", err: fmt.Errorf("create: %w", Validation(base, "bad")), want: KindValidation},
		{name: "untagged", err: base, want: KindStorageFault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestError_Message(t *testing.T) {
	base := errors.New("boom")

	assert.Equal(t, "custom", New(KindStorageFault, base, "custom").Error())
	assert.Equal(t, "boom", New(KindStorageFault, base, "").Error())
	assert.Equal(t, "InvalidAction", New(KindInvalidAction, nil, "").Error())
	assert.ErrorIs(t, NotFound(base, "x"), base)
}
