package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatLapTime(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "00:00.000"},
		{105123, "01:45.123"},
		{59999, "00:59.999"},
		{6000000, "100:00.000"},
		{-5, "00:00.000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatLapTime(tt.ms))
			assert.Equal(t, tt.want, LapTime{LapTimeMs: tt.ms}.Formatted())
		})
	}
}

func TestCarCategory_ValidDashboard(t *testing.T) {
	for _, c := range CarCategories() {
		assert.True(t, c.Valid(), string(c))
	}
	assert.False(t, CarCategory("gt1").Valid())
	assert.False(t, CarCategory("").Valid())
	assert.Len(t, CarCategories(), 7)
}

func TestProfile_LockedDashboard(t *testing.T) {
	var missing *Profile
	assert.False(t, missing.Locked())
	assert.False(t, (&Profile{}).Locked())
	assert.True(t, (&Profile{Nickname: "apex"}).Locked())
}
