package lnbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListParams_Encode(t *testing.T) {
	tests := []struct {
		name   string
		params *ListParams
		want   string
	}{
		{
			name:   "nil params",
			params: nil,
			want:   "",
		},
		{
			name:   "zero values omitted",
			params: &ListParams{},
			want:   "",
		},
		{
			name:   "limit only",
			params: &ListParams{Limit: 25},
			want:   "limit=25",
		},
		{
			name:   "after only",
			params: &ListParams{After: 100},
			want:   "after=100",
		},
		{
			name:   "limit before after",
			params: &ListParams{Limit: 5, After: 42},
			want:   "limit=5&after=42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.encode())
		})
	}
}
