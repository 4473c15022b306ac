package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/enrollhub/internal/pkg/apperrors"
)

func TestParseTimeRange(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeRange
		wantErr bool
	}{
		{name: "morning slot", input: "08:00–09:30", want: TimeRange{Start: 480, End: 570}},
		{name: "afternoon slot", input: "14:00–15:30", want: TimeRange{Start: 840, End: 930}},
		{name: "spaces around separator", input: "08:00 – 09:30", want: TimeRange{Start: 480, End: 570}},
		{name: "zero-length range", input: "10:00–10:00", want: TimeRange{Start: 600, End: 600}},
		{name: "midnight start", input: "00:00–01:00", want: TimeRange{Start: 0, End: 60}},
		{name: "ascii hyphen rejected", input: "08:00-09:30", wantErr: true},
		{name: "missing separator", input: "08:00 09:30", wantErr: true},
		{name: "bad start", input: "25:00–09:30", wantErr: true},
		{name: "bad end", input: "08:00–09:75", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "only separator", input: "–", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeRange(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrMalformedTimeRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeRangeOverlaps(t *testing.T) {
	base := TimeRange{Start: 480, End: 570} // 08:00–09:30

	tests := []struct {
		name  string
		other TimeRange
		want  bool
	}{
		{name: "contained", other: TimeRange{Start: 500, End: 550}, want: true},
		{name: "partial overlap at end", other: TimeRange{Start: 540, End: 600}, want: true},
		{name: "partial overlap at start", other: TimeRange{Start: 450, End: 500}, want: true},
		{name: "identical", other: TimeRange{Start: 480, End: 570}, want: true},
		{name: "touching end does not overlap", other: TimeRange{Start: 570, End: 630}, want: false},
		{name: "touching start does not overlap", other: TimeRange{Start: 420, End: 480}, want: false},
		{name: "disjoint", other: TimeRange{Start: 600, End: 660}, want: false},
		{name: "zero-length inside never overlaps", other: TimeRange{Start: 500, End: 500}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			// The overlap relation is symmetric.
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestTimeRangeString(t *testing.T) {
	r, err := ParseTimeRange("08:00–09:30")
	require.NoError(t, err)
	assert.Equal(t, "08:00–09:30", r.String())
}

func TestParseDays(t *testing.T) {
	assert.Len(t, ParseDays("MWF"), 3)
	assert.Len(t, ParseDays("TR"), 2)
	assert.Len(t, ParseDays(""), 0)
	// Duplicates collapse.
	assert.Len(t, ParseDays("MMM"), 1)
}

func TestDaySetIntersects(t *testing.T) {
	mwf := ParseDays("MWF")
	tr := ParseDays("TR")
	mw := ParseDays("MW")

	assert.False(t, mwf.Intersects(tr))
	assert.False(t, tr.Intersects(mwf))
	assert.True(t, mwf.Intersects(mw))
	assert.True(t, mw.Intersects(mwf))
	assert.False(t, mwf.Intersects(ParseDays("")))
}

func TestMeetingConflicts(t *testing.T) {
	parse := func(days, tr string) Meeting {
		m, err := ParseMeeting(days, tr)
		require.NoError(t, err)
		return m
	}

	x := parse("MWF", "08:00–09:30")
	y := parse("TR", "08:00–09:30")
	z := parse("MW", "09:00–10:00")
	w := parse("WF", "09:30–10:30")

	// Same time, no shared day.
	assert.False(t, x.ConflictsWith(y))
	// Shared days M,W and overlapping times.
	assert.True(t, x.ConflictsWith(z))
	assert.True(t, z.ConflictsWith(x))
	// Shared day but touching boundary only.
	assert.False(t, x.ConflictsWith(w))
}

func TestParseMeetingMalformedTime(t *testing.T) {
	_, err := ParseMeeting("MWF", "8am to 9am")
	assert.ErrorIs(t, err, apperrors.ErrMalformedTimeRange)
}
