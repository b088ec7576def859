package list_events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingReadModel struct {
	got *Request
}

func (m *recordingReadModel) ListEvents(_ context.Context, req *Request) (*Result, error) {
	m.got = req
	return &Result{}, nil
}

func TestQuery_ClampsLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero uses default", 0, DefaultLimit},
		{"negative uses default", -3, DefaultLimit},
		{"within range kept", 25, 25},
		{"above max clamped", 5000, MaxLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rm := &recordingReadModel{}
			_, err := NewQuery(rm).Execute(context.Background(), &Request{Limit: tt.limit})
			require.NoError(t, err)
			assert.Equal(t, tt.want, rm.got.Limit)
		})
	}
}
