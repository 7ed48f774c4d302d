package library

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validGUID = "3f2504e0-4f89-11d3-9a0c-0305e82c3301"

func TestIsValidIdentifierFormat(t *testing.T) {
	valid := []string{
		validGUID,
		strings.ToUpper(validGUID),
		"3F2504e0-4F89-11d3-9A0C-0305e82C3301",
		"00000000-0000-0000-0000-000000000000",
	}
	for _, v := range valid {
		assert.True(t, IsValidIdentifierFormat(v), v)
	}

	invalid := []string{
		"",
		"not-a-guid",
		"3f2504e0-4f89-11d3-9a0c-0305e82c330",   // short last group
		"3f2504e0-4f89-11d3-9a0c-0305e82c33011", // long last group
		"3f2504e04f8911d39a0c0305e82c3301",      // no dashes
		"{3f2504e0-4f89-11d3-9a0c-0305e82c3301}",
		"3f2504e0-4f89-11d3-9a0c-0305e82c330g",
		" " + validGUID,
		validGUID + "\n",
	}
	for _, v := range invalid {
		assert.False(t, IsValidIdentifierFormat(v), "%q", v)
	}
}

func TestGUIDTagRegistered(t *testing.T) {
	require.NotPanics(t, func() {
		assert.NoError(t, validate.Var(validGUID, "guid"))
		assert.Error(t, validate.Var("nope", "guid"))
	})
}

func TestValidateBookFields(t *testing.T) {
	type testCase struct {
		name    string
		title   string
		date    string
		ref     string
		wantErr error
	}
	testCases := []testCase{
		{name: "ok", title: "Rayuela", date: "1963-06-28", ref: validGUID},
		{name: "title_at_limit", title: strings.Repeat("a", 35), date: "1963-06-28", ref: validGUID},
		{name: "multibyte_title_at_limit", title: strings.Repeat("ñ", 35), date: "1963-06-28", ref: validGUID},
		{name: "title_too_long", title: strings.Repeat("a", 36), date: "1963-06-28", ref: validGUID, wantErr: ErrTitleTooLong},
		{name: "missing_title", title: "", date: "1963-06-28", ref: validGUID, wantErr: ErrMissingField},
		{name: "padded_title_too_long", title: strings.Repeat("a", 35) + "  ", date: "1963-06-28", ref: validGUID, wantErr: ErrTitleTooLong},
		{name: "blank_title", title: "   ", date: "1963-06-28", ref: validGUID},
		{name: "blank_date", title: "Rayuela", date: "   ", ref: validGUID, wantErr: ErrMissingField},
		{name: "missing_ref", title: "Rayuela", date: "1963-06-28", ref: "", wantErr: ErrMissingField},
		{name: "bad_ref", title: "Rayuela", date: "1963-06-28", ref: "not-a-guid", wantErr: ErrInvalidAuthorReference},
		{name: "missing_wins_over_bad_ref", title: "", date: "1963-06-28", ref: "not-a-guid", wantErr: ErrMissingField},
		{name: "long_title_wins_over_bad_ref", title: strings.Repeat("a", 40), date: "1963-06-28", ref: "nope", wantErr: ErrTitleTooLong},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateBookFields(tc.title, tc.date, tc.ref)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestValidateAuthorFields(t *testing.T) {
	assert.NoError(t, ValidateAuthorFields("Julio", "Cortázar", "1914-08-26"))
	assert.ErrorIs(t, ValidateAuthorFields("Julio", "", "1914-08-26"), ErrMissingField)
	assert.ErrorIs(t, ValidateAuthorFields("", "", ""), ErrMissingField)
}

func TestNormalizeTimestamp(t *testing.T) {
	type testCase struct {
		in   string
		want string
	}
	testCases := []testCase{
		{in: "2024-03-05T10:30", want: "2024-03-05T10:30:00.000Z"},
		{in: "2024-03-05 10:30", want: "2024-03-05T10:30:00.000Z"},
		{in: "2024-03-05", want: "2024-03-05T00:00:00.000Z"},
		{in: "2024-03-05T10:30:00+02:00", want: "2024-03-05T08:30:00.000Z"},
		{in: " 2024-03-05T10:30:15.25Z ", want: "2024-03-05T10:30:15.250Z"},
	}
	for _, tc := range testCases {
		got, err := NormalizeTimestamp(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := NormalizeTimestamp("05/03/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestNormalizeDate_TruncatesToMidnight(t *testing.T) {
	got, err := NormalizeDate("1914-08-26T18:45")
	require.NoError(t, err)
	assert.Equal(t, "1914-08-26T00:00:00.000Z", got)
}

func TestEditAndDisplayTimestamp(t *testing.T) {
	assert.Equal(t, "1967-05-30T14:05", EditTimestamp("1967-05-30T14:05:09.000Z"))
	assert.Equal(t, "1967-05-30", DisplayDate("1967-05-30T14:05:09.000Z"))
	assert.Equal(t, "garbage", EditTimestamp("garbage"))
}

func TestIsPreflight(t *testing.T) {
	assert.True(t, IsPreflight(ErrTitleTooLong))
	assert.True(t, IsPreflight(ErrBusy))
	assert.False(t, IsPreflight(assert.AnError))
	assert.False(t, IsPreflight(nil))
}
