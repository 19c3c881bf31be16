package collection

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/colorlcp/multiacs/acstype"
)

func TestObserveAccumulatesSizeFreqAndColors(t *testing.T) {
	info := New()
	info.Observe('A', 0)
	info.Observe('A', 0)
	info.Observe('C', 1)

	assert.EqualValues(t, 3, info.Size)
	assert.EqualValues(t, 2, info.Freq['A'])
	assert.EqualValues(t, 1, info.Freq['C'])
	assert.EqualValues(t, 2, info.Colors[0])
	assert.EqualValues(t, 1, info.Colors[1])
	assert.Equal(t, 2, info.AlphabetSize())
	assert.Equal(t, 2, info.SequenceCount())
}

func TestSaveLoadTextRoundTrip(t *testing.T) {
	info := New()
	info.Size = 10
	info.Freq['A'] = 4
	info.Freq[0] = 2
	info.Colors[0] = 5
	info.Colors[1] = 7

	var buf bytes.Buffer
	require.NoError(t, info.SaveText(&buf))

	loaded, err := LoadText(&buf)
	require.NoError(t, err)
	assert.Equal(t, info.Size, loaded.Size)
	assert.Equal(t, info.Freq, loaded.Freq)
	assert.Equal(t, info.Colors, loaded.Colors)
}

func TestJoinRenumbersOnCollisionAndMisfilesOnNonCollision(t *testing.T) {
	// a already has color 0; joining b (which also has color 0) collides,
	// so b's color 0 is renumbered to 0+len(a.Colors)=1 and inserted into
	// Colors correctly. b's color 5 (absent from a) does NOT collide, so
	// it is (incorrectly, but deliberately) inserted into Freq instead of
	// Colors -- see DESIGN.md.
	a := New()
	a.Colors[0] = 10
	a.Size = 10

	b := New()
	b.Colors[0] = 20
	b.Colors[5] = 30
	b.Size = 50

	a.Join(b)

	assert.EqualValues(t, 60, a.Size)
	assert.EqualValues(t, 20, a.Colors[1], "colliding color renumbered by original sequence count")
	_, ok := a.Colors[5]
	assert.False(t, ok, "non-colliding color must NOT land in Colors (bug preserved)")
	assert.EqualValues(t, 30, a.Freq[acstype.Symbol(5)], "non-colliding color's length lands in Freq instead (bug preserved)")
}

func TestFingerprintStableAndSensitive(t *testing.T) {
	a := New()
	a.Observe('A', 0)
	a.Observe('C', 1)

	b := New()
	b.Observe('A', 0)
	b.Observe('C', 1)

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.Observe('G', 1)
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}
