package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmr-tortoise/venvctl/internal/model"
)

// TestFormatPinTable verifies the aligned two-column rendering of the
// installed package listing.
func TestFormatPinTable(t *testing.T) {
	pins := []model.Pin{
		{Name: "charset-normalizer", Version: "3.3.2"},
		{Name: "requests", Version: "2.31.0"},
		{Name: "tcod", Version: "16.2.2"},
	}

	out := FormatPinTable(pins)

	expected := "NAME                VERSION\n" +
		"charset-normalizer  3.3.2\n" +
		"requests            2.31.0\n" +
		"tcod                16.2.2\n"
	assert.Equal(t, expected, out)
}

// TestFormatPinTableEmpty verifies the message shown for an environment
// with nothing installed.
func TestFormatPinTableEmpty(t *testing.T) {
	assert.Equal(t, "No packages installed.\n", FormatPinTable(nil))
}

// TestFormatPinTableShortNames verifies that the name column never
// shrinks below the header width.
func TestFormatPinTableShortNames(t *testing.T) {
	out := FormatPinTable([]model.Pin{{Name: "six", Version: "1.16.0"}})

	expected := "NAME  VERSION\n" +
		"six   1.16.0\n"
	assert.Equal(t, expected, out)
}
