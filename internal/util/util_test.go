package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Studio Headphones MK2": "studio-headphones-mk2",
		"  Trim Me  ":           "trim-me",
		"a--b__c":               "a-b-c",
		"Ноутбук 15":            "ноутбук-15",
		"!!!":                   "",
	}
	for in, want := range cases {
		require.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestClampSize(t *testing.T) {
	require.Equal(t, 1, ClampSize(0))
	require.Equal(t, 1, ClampSize(-5))
	require.Equal(t, 42, ClampSize(42))
	require.Equal(t, MaxPageSize, ClampSize(9999))
}

func TestClampPage(t *testing.T) {
	require.Equal(t, 1, ClampPage(0, 10))
	require.Equal(t, 1, ClampPage(-1, 10))
	require.Equal(t, 7, ClampPage(7, 10))
	require.Equal(t, 10, ClampPage(99, 10))
}

func TestCountPages(t *testing.T) {
	require.EqualValues(t, 1, CountPages(0, 10))
	require.EqualValues(t, 1, CountPages(10, 10))
	require.EqualValues(t, 2, CountPages(11, 10))
	require.EqualValues(t, 5, CountPages(9, 2))
}

func TestParseIntDefault(t *testing.T) {
	require.Equal(t, 3, ParseIntDefault("", 3))
	require.Equal(t, 17, ParseIntDefault("17", 3))
	require.Equal(t, 3, ParseIntDefault("junk", 3))
}
