package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRange(t *testing.T) {
	tests := []struct {
		name     string
		since    string
		until    string
		wantFrom time.Time
		wantTo   time.Time
		wantErr  bool
	}{
		{name: "unbounded"},
		{
			name:     "since only",
			since:    "2024-05-02",
			wantFrom: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "whole days inclusive",
			since:    "2024-05-02",
			until:    "2024-05-03",
			wantFrom: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2024, 5, 3, 23, 59, 59, 999_000_000, time.UTC),
		},
		{name: "bad date", since: "May 2", wantErr: true},
		{name: "reversed", since: "2024-05-03", until: "2024-05-02", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := historyRange(tt.since, tt.until, time.UTC)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.wantFrom.Equal(opts.From), "from = %v", opts.From)
			assert.True(t, tt.wantTo.Equal(opts.To), "to = %v", opts.To)
			assert.Zero(t, opts.Limit)
		})
	}
}
