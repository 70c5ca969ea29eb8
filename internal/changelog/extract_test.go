package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const preamble = `# Changelog
All notable changes to this project will be documented in this file.

The format is based on [Keep a Changelog](http://keepachangelog.com/en/1.0.0/)
and this project adheres to [Semantic Versioning](http://semver.org/spec/v2.0.0.html).

`

func TestExtractLatestEntry(t *testing.T) {
	tests := map[string]struct {
		text string
		want string
	}{
		"multiple entries": {
			text: preamble + "## [1.2.26] - 2022-06-24\n" +
				"- Many bugfixes\n" +
				"- Much more stable. Use this version. \n\n" +
				"## [1.0.0] - 2022-06-16\n" +
				"- Major breaking changes.\n" +
				"- Much better now.\n" +
				"- Many new features.\n\n" +
				"## [0.1.0] - 2022-06-15\n" +
				"- Initial release.",
			want: "## [1.2.26] - 2022-06-24\n" +
				"- Many bugfixes\n" +
				"- Much more stable. Use this version. \n\n",
		},
		"single entry runs to end of file": {
			text: preamble + "## [0.1.0] - 2022-06-25\n" +
				"- Initial release.\n\n" +
				"End of File",
			want: "## [0.1.0] - 2022-06-25\n" +
				"- Initial release.\n\n" +
				"End of File",
		},
		"lowercase v prefix": {
			text: preamble + "## [v1.2.26] - 2022-06-24\n" +
				"- Many bugfixes\n" +
				"- Much more stable. Use this version.\n\n" +
				"## [v1.0.0] - 2022-06-16\n" +
				"- Major breaking changes.\n\n" +
				"## [v0.1.0] - 2022-06-15\n" +
				"- Initial release.",
			want: "## [v1.2.26] - 2022-06-24\n" +
				"- Many bugfixes\n" +
				"- Much more stable. Use this version.\n\n",
		},
		"uppercase V prefix": {
			text: preamble + "## [V1.2.26] - 2022-06-24\n" +
				"- Many bugfixes\n" +
				"- Much more stable. Use this version.\n\n" +
				"## [V1.0.0] - 2022-06-16\n" +
				"- Major breaking changes.\n\n" +
				"## [V0.1.0] - 2022-06-15\n" +
				"- Initial release.",
			want: "## [V1.2.26] - 2022-06-24\n" +
				"- Many bugfixes\n" +
				"- Much more stable. Use this version.\n\n",
		},
		"single header at very end": {
			text: preamble + "## [2.0.0] - 2023-01-01",
			want: "## [2.0.0] - 2023-01-01",
		},
		"header only document": {
			text: "## [0.0.1] - 2020-01-01",
			want: "## [0.0.1] - 2020-01-01",
		},
		"multi-digit version components": {
			text: "## [10.200.3000] - 2024-12-31\nbody\n## [9.0.0] - 2024-01-01\n",
			want: "## [10.200.3000] - 2024-12-31\nbody\n",
		},
		"document order wins over version order": {
			text: "## [0.1.0] - 2020-01-01\nold first\n## [5.0.0] - 2024-01-01\nnewer\n",
			want: "## [0.1.0] - 2020-01-01\nold first\n",
		},
		"header embedded in prose counts": {
			text: "See ## [1.0.0] - 2022-01-01 for details\n## [0.9.0] - 2021-01-01\n",
			want: "## [1.0.0] - 2022-01-01 for details\n",
		},
		"trailing whitespace and blank lines kept verbatim": {
			text: "## [1.0.0] - 2022-01-01   \n\n\n  - indented   \n\t\n## [0.9.0] - 2021-01-01",
			want: "## [1.0.0] - 2022-01-01   \n\n\n  - indented   \n\t\n",
		},
		"unreleased section is skipped": {
			text: "## [Unreleased]\n- wip\n\n## [1.1.0] - 2023-05-05\n- shipped\n",
			want: "## [1.1.0] - 2023-05-05\n- shipped\n",
		},
		"adjacent headers yield header line only": {
			text: "## [2.0.0] - 2023-02-02## [1.0.0] - 2023-01-01",
			want: "## [2.0.0] - 2023-02-02",
		},
		"crlf line endings preserved": {
			text: "## [1.0.0] - 2022-01-01\r\n- fix\r\n## [0.1.0] - 2021-01-01\r\n",
			want: "## [1.0.0] - 2022-01-01\r\n- fix\r\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ExtractLatestEntry(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractLatestEntry_NoHeader(t *testing.T) {
	tests := map[string]struct {
		text string
	}{
		"empty input": {
			text: "",
		},
		"prose and bullets only": {
			text: `# Changelog

This project will fail to parse this changelog since it doesn't contain
a valid header for each version.

- 0.1.7:
    - Minor changes and bugfixes.

- 0.0.1:
    - Initial release.
`,
		},
		"missing date": {
			text: "## [1.0.0]\n- thing\n",
		},
		"two-part version": {
			text: "## [1.0] - 2022-06-24\n",
		},
		"prefix other than v": {
			text: "## [x1.0.0] - 2022-06-24\n",
		},
		"double v prefix": {
			text: "## [vv1.0.0] - 2022-06-24\n",
		},
		"single hash heading": {
			text: "# [1.0.0] - 2022-06-24\n",
		},
		"no space after hashes": {
			text: "##[1.0.0] - 2022-06-24\n",
		},
		"extra space before bracket": {
			text: "##  [1.0.0] - 2022-06-24\n",
		},
		"missing space around dash": {
			text: "## [1.0.0]-2022-06-24\n",
		},
		"em dash separator": {
			text: "## [1.0.0] — 2022-06-24\n",
		},
		"two-digit year": {
			text: "## [1.0.0] - 22-06-24\n",
		},
		"single-digit month": {
			text: "## [1.0.0] - 2022-6-24\n",
		},
		"slash date": {
			text: "## [1.0.0] - 2022/06/24\n",
		},
		"parenthesized version": {
			text: "## (1.0.0) - 2022-06-24\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ExtractLatestEntry(tt.text)
			require.Error(t, err)
			assert.Empty(t, got)
			assert.True(t, IsNoHeaderFound(err))
			assert.Contains(t, err.Error(), "no valid changelog headers found")
			assert.Contains(t, err.Error(), "supported format")
		})
	}
}

func TestExtractLatestEntry_PrefixMatchesUnprefixed(t *testing.T) {
	body := "\n- Many bugfixes\n\n## [1.0.0] - 2022-06-16\n- older\n"

	plain, err := ExtractLatestEntry("## [1.2.26] - 2022-06-24" + body)
	require.NoError(t, err)

	for _, prefix := range []string{"v", "V"} {
		t.Run(prefix, func(t *testing.T) {
			got, err := ExtractLatestEntry("## [" + prefix + "1.2.26] - 2022-06-24" + body)
			require.NoError(t, err)
			assert.Equal(t, len(plain)+1, len(got))
			assert.Equal(t, plain[len("## ["):], got[len("## [")+1:])
		})
	}
}

func TestExtractLatestEntry_Idempotent(t *testing.T) {
	text := preamble + "## [1.0.0] - 2022-06-16\n- a\n\n## [0.1.0] - 2022-06-15\n- b\n"

	first, err := ExtractLatestEntry(text)
	require.NoError(t, err)
	second, err := ExtractLatestEntry(text)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExtractLatest_Offsets(t *testing.T) {
	text := preamble + "## [1.2.26] - 2022-06-24\n- x\n\n## [1.0.0] - 2022-06-16\n- y\n\n## [0.1.0] - 2022-06-15\n"

	headers := FindHeaders(text, -1)
	require.Len(t, headers, 3)
	for i := 1; i < len(headers); i++ {
		assert.Less(t, headers[i-1].Offset, headers[i].Offset)
	}

	entry, err := ExtractLatest(text)
	require.NoError(t, err)
	assert.Equal(t, text[headers[0].Offset:headers[1].Offset], entry.Text)
	assert.Equal(t, headers[0], entry.Header)
}

func TestFindHeaders(t *testing.T) {
	text := "## [v1.2.3] - 2024-01-15\n- a\n## [1.2.2] - 2024-01-01\n- b\n## [V1.0.0] - 2023-12-01\n"

	tests := map[string]struct {
		n    int
		want []Header
	}{
		"all headers": {
			n: -1,
			want: []Header{
				{Offset: 0, Line: "## [v1.2.3] - 2024-01-15", Version: "v1.2.3", Date: "2024-01-15"},
				{Offset: 29, Line: "## [1.2.2] - 2024-01-01", Version: "1.2.2", Date: "2024-01-01"},
				{Offset: 57, Line: "## [V1.0.0] - 2023-12-01", Version: "V1.0.0", Date: "2023-12-01"},
			},
		},
		"limited to two": {
			n: 2,
			want: []Header{
				{Offset: 0, Line: "## [v1.2.3] - 2024-01-15", Version: "v1.2.3", Date: "2024-01-15"},
				{Offset: 29, Line: "## [1.2.2] - 2024-01-01", Version: "1.2.2", Date: "2024-01-01"},
			},
		},
		"zero requested": {
			n:    0,
			want: []Header{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := FindHeaders(text, tt.n)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindHeaders_NoMatches(t *testing.T) {
	assert.Empty(t, FindHeaders("nothing to see here", -1))
}
