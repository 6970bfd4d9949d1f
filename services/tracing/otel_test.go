package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliakseitokarev/rsschool-app/core"
)

func TestSetup_disabled(t *testing.T) {
	tests := []struct {
		name string
		conf core.TracingConfig
	}{
		{name: "disabled", conf: core.TracingConfig{Endpoint: "http://localhost:4318"}},
		{name: "no endpoint", conf: core.TracingConfig{Enabled: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shutdown, err := Setup(context.Background(), &core.Config{Tracing: tt.conf})
			require.NoError(t, err)
			assert.NoError(t, shutdown(context.Background()))
		})
	}
}
