package row_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/bucket/internal/importer/row"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "10,00", want: "10"},
		{in: "-588,74", want: "-588.74"},
		{in: "1.234,56", want: "1234.56"},
		{in: "-1.234.567,89", want: "-1234567.89"},
		{in: "1,234.56", want: "1234.56"},
		{in: "1,234,567", want: "1234567"},
		{in: "10.5", want: "10.5"},
		{in: "12 €", want: "12"},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := row.ParseAmount(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{in: "30-01-2026", want: time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC)},
		{in: "2026-01-30", want: time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC)},
		{in: "30.01.2026, 14:05", want: time.Date(2026, 1, 30, 14, 5, 0, 0, time.UTC)},
		{in: "2026-01-30 14:05:06", want: time.Date(2026, 1, 30, 14, 5, 6, 0, time.UTC)},
		{in: "2026-01-30T14:05:06+01:00", want: time.Date(2026, 1, 30, 13, 5, 6, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := row.ParseDate(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}

	_, err := row.ParseDate("Totais")
	assert.Error(t, err)
}

func TestColumns(t *testing.T) {
	cols := row.NewColumns([]string{"\ufeffDate ", "Title", ""})

	assert.True(t, cols.Has("Date", "Title"))
	assert.False(t, cols.Has("Amount"))
	assert.Equal(t, "x", cols.Value([]string{"a", " x "}, "Title"))
	assert.Equal(t, "", cols.Value([]string{"a"}, "Title"))
	assert.Equal(t, "", cols.Value([]string{"a", "b"}, "Amount"))
}
