package detector

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ruizrica/drift-sub012/internal/types"
)

func loggingLibraryDetector() *RegexDetector {
	return NewRegexDetector(RegexDetectorConfig{
		ID:       "pattern.logging.library",
		Name:     "logging library",
		Category: types.CategoryLogging,
		Languages: []types.Language{types.LanguageGo},
		Groups: []RegexGroup{
			{Tag: "zap", Pattern: regexp.MustCompile(`zap\.`), Confidence: 0.9},
			{Tag: "fmt.Println", Pattern: regexp.MustCompile(`fmt\.Println`), Confidence: 0.4},
		},
	})
}

func TestRegexDetectorMatchesEachGroupIndependently(t *testing.T) {
	d := loggingLibraryDetector()
	content := []byte("logger := zap.NewNop()\nfmt.Println(\"debug\")\n")

	result := d.Detect(Context{File: "main.go", Content: content, Language: types.LanguageGo})
	require.Len(t, result.Patterns, 2)
	require.Equal(t, "zap", result.Patterns[0].Signature)
	require.Equal(t, 1, result.Patterns[0].Location.StartLine)
	require.Equal(t, "fmt.Println", result.Patterns[1].Signature)
	require.Equal(t, 2, result.Patterns[1].Location.StartLine)
}

func TestRegexDetectorSkipsCommentLines(t *testing.T) {
	d := loggingLibraryDetector()
	content := []byte("// zap.L().Info(\"not real code\")\n")

	result := d.Detect(Context{File: "main.go", Content: content, Language: types.LanguageGo})
	require.Empty(t, result.Patterns)
}

func TestRegexDetectorSkipsExcludedFiles(t *testing.T) {
	d := loggingLibraryDetector()
	content := []byte("zap.L().Info(\"x\")\n")

	result := d.Detect(Context{File: "vendor/lib/main.go", Content: content, Language: types.LanguageGo})
	require.Empty(t, result.Patterns)
}

func TestShouldExcludeFile(t *testing.T) {
	require.True(t, ShouldExcludeFile("src/foo.min.js"))
	require.True(t, ShouldExcludeFile("node_modules/pkg/index.js"))
	require.True(t, ShouldExcludeFile("pb/service_pb2.py"))
	require.False(t, ShouldExcludeFile("internal/handler.go"))
}

func TestIsCommentLine(t *testing.T) {
	require.True(t, IsCommentLine("  // a comment"))
	require.True(t, IsCommentLine("# a python comment"))
	require.False(t, IsCommentLine("x := 1 // trailing comment is not a comment line"))
}

func TestLineColumn(t *testing.T) {
	content := []byte("line one\nline two\nline three")
	line, col := LineColumn(content, 0)
	require.Equal(t, 1, line)
	require.Equal(t, 1, col)

	line, col = LineColumn(content, 9)
	require.Equal(t, 2, line)
	require.Equal(t, 1, col)
}
