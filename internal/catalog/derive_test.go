package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/accsetupsviewer/server/internal/domain"
)

func TestDerive(t *testing.T) {
	paths := []string{
		"Audi_R8/Monza/setup1.json",
		"Audi_R8/Monza/wet/race.json",
		"readme.json",
		"Audi_R8/only_track.json",
		"__/Monza/x.json",
		"Audi_R8/--/x.json",
		"Ferrari-296-GT3/Spa_Francorchamps/Quali_Dry.JSON",
	}

	got := Derive(paths)

	want := []domain.SetupEntry{
		{
			Path: "Audi_R8/Monza/setup1.json", CarKey: "audi r8", TrackKey: "monza",
			CarLabel: "Audi R8", TrackLabel: "Monza", Filename: "setup1.json", FilenameLabel: "Setup1",
		},
		{
			Path: "Audi_R8/Monza/wet/race.json", CarKey: "audi r8", TrackKey: "monza",
			CarLabel: "Audi R8", TrackLabel: "Monza", Filename: "wet/race.json", FilenameLabel: "Wet/race",
		},
		{
			Path: "Ferrari-296-GT3/Spa_Francorchamps/Quali_Dry.JSON", CarKey: "ferrari 296 gt3", TrackKey: "spa francorchamps",
			CarLabel: "Ferrari 296 Gt3", TrackLabel: "Spa Francorchamps", Filename: "Quali_Dry.JSON", FilenameLabel: "Quali Dry",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Derive() mismatch (-want +got):\n%s", diff)
	}
}

func TestDerive_ExcludesShortPaths(t *testing.T) {
	for _, p := range []string{"", "setup.json", "car/", "car/track", "car/track/"} {
		_, ok := DeriveEntry(p)
		assert.False(t, ok, "path %q should be excluded", p)
	}
	assert.Empty(t, Derive([]string{"setup.json", "a"}))
}

func TestDerive_Deterministic(t *testing.T) {
	paths := []string{"b/t/1.json", "a/t/2.json"}
	assert.Equal(t, Derive(paths), Derive(paths))
}
