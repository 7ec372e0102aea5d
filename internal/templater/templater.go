// Package templater rewrites the placeholder assignments of a deployed plugin
// script with user configuration.
//
// Only the string literal of the first assignment of each recognized name is
// replaced; every other byte of the script is preserved.
package templater

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/felix3322/potplayer-translate-installer/internal/messages"
)

// DebugCall is the statement inserted when debug output is requested.
const DebugCall = "HostOpenConsole();"

// Placeholder assignment names recognized in plugin scripts.
const (
	FieldAPIKey          = "pre_api_key"
	FieldModel           = "pre_selected_model"
	FieldAPIURL          = "pre_apiUrl"
	FieldDelayMS         = "pre_delay_ms"
	FieldRetryMode       = "pre_retry_mode"
	FieldContextBudget   = "pre_context_token_budget"
	FieldTruncationMode  = "pre_context_truncation_mode"
	FieldCacheMode       = "pre_context_cache_mode"
	FieldTokenLimitsJSON = "pre_model_token_limits_json"
)

var fieldNames = []string{
	FieldAPIKey,
	FieldModel,
	FieldAPIURL,
	FieldDelayMS,
	FieldRetryMode,
	FieldContextBudget,
	FieldTruncationMode,
	FieldCacheMode,
	FieldTokenLimitsJSON,
}

// assignmentPatterns match `name = "literal"` where the literal may contain
// escaped characters but never a raw newline.
var assignmentPatterns = buildPatterns()

func buildPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(fieldNames))
	for _, name := range fieldNames {
		patterns[name] = regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\s*=\s*"((?:[^"\\\n]|\\.)*)"`)
	}
	return patterns
}

// Values carries the configuration written into a plugin script.
// Nil optional fields leave their placeholders untouched.
type Values struct {
	APIKey    string
	Model     string
	APIBase   string
	DelayMS   int
	RetryMode int
	Debug     bool

	ContextBudget   *int
	TruncationMode  *string
	CacheMode       *string
	TokenLimitsJSON *string
}

type assignment struct {
	name  string
	value string
}

func (v Values) assignments() []assignment {
	out := []assignment{
		{FieldAPIKey, v.APIKey},
		{FieldModel, v.Model},
		{FieldAPIURL, v.APIBase},
		{FieldDelayMS, strconv.Itoa(v.DelayMS)},
		{FieldRetryMode, strconv.Itoa(v.RetryMode)},
	}
	if v.ContextBudget != nil {
		out = append(out, assignment{FieldContextBudget, strconv.Itoa(*v.ContextBudget)})
	}
	if v.TruncationMode != nil {
		out = append(out, assignment{FieldTruncationMode, *v.TruncationMode})
	}
	if v.CacheMode != nil {
		out = append(out, assignment{FieldCacheMode, *v.CacheMode})
	}
	if v.TokenLimitsJSON != nil {
		out = append(out, assignment{FieldTokenLimitsJSON, *v.TokenLimitsJSON})
	}
	return out
}

// Apply returns text with every supplied field substituted and, when requested,
// the debug call inserted after the leading comment block.
func Apply(text string, v Values) string {
	for _, a := range v.assignments() {
		text = replaceFirst(text, a.name, Escape(a.value))
	}
	if v.Debug {
		text = insertDebugCall(text)
	}
	return text
}

// Escape encodes value as the body of a single-line double-quoted literal.
func Escape(value string) string {
	return literalEscaper.Replace(value)
}

var literalEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func replaceFirst(text string, name string, literal string) string {
	loc := assignmentPatterns[name].FindStringSubmatchIndex(text)
	if loc == nil {
		return text
	}
	start, end := loc[2], loc[3]
	return text[:start] + literal + text[end:]
}

func insertDebugCall(text string) string {
	if strings.Contains(text, DebugCall) {
		return text
	}
	idx := leadingCommentEnd(text)
	if idx == -1 {
		return DebugCall + "\n" + text
	}
	return text[:idx] + "\n" + DebugCall + "\n" + text[idx:]
}

// leadingCommentEnd returns the offset just past a block comment that opens
// the script after optional whitespace, or -1 when there is none.
func leadingCommentEnd(text string) int {
	start := len(text) - len(strings.TrimLeftFunc(text, unicode.IsSpace))
	if !strings.HasPrefix(text[start:], "/*") {
		return -1
	}
	end := strings.Index(text[start+len("/*"):], "*/")
	if end == -1 {
		return -1
	}
	return start + len("/*") + end + len("*/")
}

// Files is the filesystem surface needed to template a file in place.
type Files interface {
	Stat(name string) (os.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFileAtomic(filename string, data []byte, perm os.FileMode) error
}

// ApplyFile templates the file at path in memory and writes it back only after
// every substitution succeeded. The file keeps its permission bits.
func ApplyFile(files Files, path string, v Values) error {
	info, err := files.Stat(path)
	if err != nil {
		return fmt.Errorf(messages.TemplateReadFailedFmt, path, err)
	}
	data, err := files.ReadFile(path)
	if err != nil {
		return fmt.Errorf(messages.TemplateReadFailedFmt, path, err)
	}
	updated := Apply(string(data), v)
	if updated == string(data) {
		return nil
	}
	if err := files.WriteFileAtomic(path, []byte(updated), info.Mode().Perm()); err != nil {
		return fmt.Errorf(messages.TemplateWriteFailedFmt, path, err)
	}
	return nil
}
