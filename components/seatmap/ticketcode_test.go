package seatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentifierDecodesEveryToken(t *testing.T) {
	attrs, ok := ParseIdentifier("r0003-ZV-F5-U15-P10000")
	require.True(t, ok)
	assert.Equal(t, TicketAttributes{
		"room":  "0003",
		"zone":  "V",
		"floor": "5",
		"unit":  "15",
		"price": "10000",
	}, attrs)
}

func TestParseIdentifierIsCaseSensitive(t *testing.T) {
	seat, ok := ParseIdentifier("s25A")
	require.True(t, ok)
	sector, ok := ParseIdentifier("SA")
	require.True(t, ok)

	assert.Equal(t, TicketAttributes{"seat": "25A"}, seat)
	assert.Equal(t, TicketAttributes{"sector": "A"}, sector)
	assert.NotEqual(t, seat, sector)
}

func TestParseIdentifierRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"12-ZV",
		"Z",
		"ZV--SA",
		"ZV-S",
		"ZV SA",
		"xV-SA",
		"ZV-SA-",
	}
	for _, id := range cases {
		attrs, ok := ParseIdentifier(id)
		if ok {
			t.Fatalf("expected %q to be rejected, got %v", id, attrs)
		}
		if attrs != nil {
			t.Fatalf("expected nil attributes for %q", id)
		}
		if IsTicketIdentifier(id) {
			t.Fatalf("expected grammar to reject %q", id)
		}
	}
}

func TestParseIdentifierInfersRoomAndSector(t *testing.T) {
	attrs, ok := ParseIdentifier("ZV-VIP12")
	require.True(t, ok)
	assert.Equal(t, "VIP12", attrs["room"])
	assert.Equal(t, "V", attrs["zone"])

	attrs, ok = ParseIdentifier("ZA-HallA")
	require.True(t, ok)
	assert.Equal(t, "HallA", attrs["sector"])
}

func TestParseIdentifierPrefersAlphabetOverInference(t *testing.T) {
	attrs, ok := ParseIdentifier("ZA-GoldRow")
	require.True(t, ok)
	assert.Equal(t, "oldRow", attrs["gate"])
	assert.NotContains(t, attrs, "sector")
}

func TestParseIdentifierKeepsUnderscoreInValue(t *testing.T) {
	attrs, ok := ParseIdentifier("SA_1-R2")
	require.True(t, ok)
	assert.Equal(t, TicketAttributes{"sector": "A_1", "row": "2"}, attrs)
}

func TestSerializeIdentifierRoundTrip(t *testing.T) {
	ids := []string{
		"r0003-ZV-F5-U15-P10000",
		"ZV-SA-r0012",
		"s25A",
		"ZA-BN-J2-R14-s7",
		"ZV-VIP12",
		"ZA-HallA",
		"t12-D20240101-G3-E2",
	}
	for _, id := range ids {
		attrs, ok := ParseIdentifier(id)
		require.True(t, ok, id)
		serialized := SerializeIdentifier(attrs)
		again, ok := ParseIdentifier(serialized)
		require.True(t, ok, serialized)
		assert.Equal(t, attrs, again, "round trip of %s via %s", id, serialized)
	}
}

func TestSerializeIdentifierCanonicalOrder(t *testing.T) {
	id := SerializeIdentifier(TicketAttributes{
		"price":  "100",
		"seat":   "4",
		"zone":   "V",
		"bogus":  "x",
		"sector": "",
	})
	assert.Equal(t, "ZV-s4-P100", id)
}

func TestCodeLookups(t *testing.T) {
	code, ok := CodeFor("entrance")
	require.True(t, ok)
	assert.Equal(t, byte('E'), code)

	attr, ok := AttributeFor('t')
	require.True(t, ok)
	assert.Equal(t, "table", attr)

	_, ok = AttributeFor('x')
	assert.False(t, ok)
}
