// Package prompts builds the fixed natural-language templates submitted to
// the generation service. The templates constrain the model's output shape;
// the textutil formatters remain a defensive layer and never assume the
// model actually obeyed.
package prompts

import (
	"fmt"
	"strings"
)

// NotMedicalAdSentinel is the marker substring the model produces when the
// input is not a medical advertisement. The orchestrator matches on it to
// skip the revision phase.
const NotMedicalAdSentinel = "不是醫療廣告"

// FallbackRevision is returned in place of a revision suggestion when the
// input was not a medical advertisement.
const FallbackRevision = "請輸入醫療廣告詞"

// BuildLegalAnalysis composes the legal-analysis prompt from the static
// law corpus and the user's ad copy. lawContext may be empty when the
// corpus file is missing; the analysis then proceeds without grounding
// text.
func BuildLegalAnalysis(lawContext, adText string) string {
	var b strings.Builder

	b.WriteString("你是一個專業的律師，並具有台灣的醫療法相關知識。\n\n")
	b.WriteString("請先分析相關文件：\n")
	b.WriteString(lawContext)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "請用你自己的話並以繁體中文告訴我此廣告詞是否違法：%s\n\n", adText)
	b.WriteString("請依照以下格式回答：\n")
	b.WriteString("1. 判斷結果（違法或不違法）\n")
	b.WriteString("2. 違反的法條\n")
	b.WriteString("3. 判斷理由\n")
	b.WriteString("4. 具體違規內容\n")
	fmt.Fprintf(&b, "如果這段文字不是醫療廣告，請直接回答「這%s」。", NotMedicalAdSentinel)

	return b.String()
}

// BuildRevision composes the revision-suggestion prompt from the prior
// legal analysis and the original ad copy.
func BuildRevision(analysis, adText string) string {
	var b strings.Builder

	b.WriteString("你是一個專業的廣告詞家，具有台灣的醫療法相關知識。\n\n")
	b.WriteString(analysis)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "請參考上述語句幫我以繁體中文建議我如何修改此廣告詞以達到不違法的目的，請只要告訴我修改後的結果就好：%s", adText)

	return b.String()
}
