package preprocessor

import (
	"testing"
)

func TestNormalizeSource(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "already normal",
			input:    "x = 1\n",
			expected: "x = 1\n",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "byte order mark",
			input:    "\uFEFFx = 1\n",
			expected: "x = 1\n",
		},
		{
			name:     "crlf",
			input:    "def f():\r\n    x = 1\r\n",
			expected: "def f():\n    x = 1\n",
		},
		{
			name:     "lone cr",
			input:    "x = 1\ry = 2\r",
			expected: "x = 1\ny = 2\n",
		},
		{
			name:     "missing trailing newline",
			input:    "class P:\n    x = 0",
			expected: "class P:\n    x = 0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSource(tt.input); got != tt.expected {
				t.Errorf("NormalizeSource() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNormalizeSourceIdempotent(t *testing.T) {
	input := "\uFEFFx = 1\r\ny = 2"
	once := NormalizeSource(input)
	if twice := NormalizeSource(once); twice != once {
		t.Errorf("NormalizeSource() not idempotent: %q then %q", once, twice)
	}
}

func TestInsertBanner(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		source   string
		expected string
	}{
		{
			name:     "named source",
			output:   "int x = 1;\n",
			source:   "pkg/mod.py",
			expected: "/* generated by pytoc from pkg/mod.py */\nint x = 1;\n",
		},
		{
			name:     "anonymous source",
			output:   "",
			source:   "",
			expected: "/* generated by pytoc from <input> */\n",
		},
		{
			name:     "comment terminator escaped",
			output:   "",
			source:   "a*/b.py",
			expected: "/* generated by pytoc from a*\\/b.py */\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InsertBanner(tt.output, tt.source); got != tt.expected {
				t.Errorf("InsertBanner() = %q, want %q", got, tt.expected)
			}
		})
	}
}
