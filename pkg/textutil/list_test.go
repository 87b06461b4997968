package textutil

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestFormatList_PreservesNumberedLines(t *testing.T) {
	assert.Equal(t, "1. foo", FormatList("1. foo"))
	assert.Equal(t, "一、該廣告違法", FormatList("一、該廣告違法"))
	assert.Equal(t, "2) 理由如下", FormatList("2) 理由如下"))
}

func TestFormatList_PreservesBulletLines(t *testing.T) {
	assert.Equal(t, "• 已是項目", FormatList("• 已是項目"))
	assert.Equal(t, "- dash item", FormatList("- dash item"))
}

func TestFormatList_KeywordLinesBecomeBullets(t *testing.T) {
	got := FormatList("違反醫療法第85條")
	assert.Equal(t, "• 違反醫療法第85條", got)

	got = FormatList("結論")
	assert.Equal(t, "• 結論", got)
}

func TestFormatList_NumberedKeywordLineStaysNumbered(t *testing.T) {
	// Classification order: an already-numbered line is kept verbatim even
	// when it starts with digits ahead of a keyword line.
	got := FormatList("1. 違反醫療法")
	assert.Equal(t, "1. 違反醫療法", got)
}

func TestFormatList_ShortClauseIndented(t *testing.T) {
	got := FormatList("此為誇大不實之宣傳。")
	assert.Equal(t, "  - 此為誇大不實之宣傳。", got)

	got = FormatList("免費健檢，送好禮")
	assert.Equal(t, "  - 免費健檢，送好禮", got)
}

func TestFormatList_DropsBlankLinesAndCollapsesSpaces(t *testing.T) {
	got := FormatList("abc   def\n\n\nghi\tjkl")
	assert.Equal(t, "abc def\nghi jkl", got)
}

func TestFormatList_TruncatesLongOutput(t *testing.T) {
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = "這是一段超過截斷門檻的法律分析說明文字內容"
	}
	got := FormatList(strings.Join(lines, "\n"))

	gotLines := strings.Split(got, "\n")
	if utf8.RuneCountInString(got) > 80 {
		assert.LessOrEqual(t, len(gotLines), 4)
	}
}

func TestFormatList_EmptyAndNumericInput(t *testing.T) {
	assert.Equal(t, "", FormatList(""))
	assert.Equal(t, "12345", FormatList("12345"))
}

func TestFormatListHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "numbered line",
			input:    "1. 違法",
			expected: `<div class="list-item-numbered">1. 違法</div>`,
		},
		{
			name:     "bullet line",
			input:    "• 根據醫療法",
			expected: `<div class="list-item-bullet">• 根據醫療法</div>`,
		},
		{
			name:     "indented bullet keeps trimmed remainder",
			input:    "  - 補充說明。",
			expected: `<div class="list-item-indented">補充說明。</div>`,
		},
		{
			name:     "plain line",
			input:    "其他文字",
			expected: `<div class="list-item">其他文字</div>`,
		},
		{
			name:  "lines concatenate without separator",
			input: "1. 違法\n其他",
			expected: `<div class="list-item-numbered">1. 違法</div>` +
				`<div class="list-item">其他</div>`,
		},
		{
			name:     "content is escaped",
			input:    "a <b> & c",
			expected: `<div class="list-item">a &lt;b&gt; &amp; c</div>`,
		},
		{
			name:     "blank lines dropped",
			input:    "\n\n",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatListHTML(tt.input))
		})
	}
}
