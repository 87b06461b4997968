package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/madetect-tw/madetect-engine/pkg/llm"
	"github.com/madetect-tw/madetect-engine/pkg/prompts"
	"github.com/madetect-tw/madetect-engine/pkg/retry"
)

func writeLawDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "law.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestAnalyze_FullPipeline(t *testing.T) {
	mock := llm.NewMockClient()
	mock.GenerateTextFunc = func(_ context.Context, prompt string) (string, error) {
		if strings.Contains(prompt, "廣告詞家") {
			return "**修改後**：歡迎洽詢本院醫師了解療程細節", nil
		}
		return "## 分析\n1. 判斷結果：違法\n違反醫療法第86條禁止誇大療效", nil
	}

	svc := NewAnalysisService(mock, &retry.Policy{MaxAttempts: 1}, writeLawDoc(t, "醫療法第86條"), zap.NewNop())

	result, err := svc.Analyze(context.Background(), "免費健檢送好禮")
	require.NoError(t, err)

	assert.Equal(t, 2, mock.GenerateTextCalls)

	// Markdown is stripped from both outputs.
	assert.NotContains(t, result.ResultLaw, "##")
	assert.NotContains(t, result.ResultAdvice, "**")
	assert.Contains(t, result.ResultAdvice, "修改後")

	// Keyword lines become bullets, numbered lines stay verbatim.
	assert.Contains(t, result.ResultLaw, "1. 判斷結果：違法")
	assert.Contains(t, result.ResultLaw, "• 違反醫療法第86條禁止誇大療效")
	assert.Contains(t, result.ResultLawHTML, "list-item")

	// Phase one sees the corpus and the ad, phase two the raw analysis.
	require.Len(t, mock.Prompts, 2)
	assert.Contains(t, mock.Prompts[0], "醫療法第86條")
	assert.Contains(t, mock.Prompts[0], "免費健檢送好禮")
	assert.Contains(t, mock.Prompts[1], "## 分析")
	assert.Contains(t, mock.Prompts[1], "免費健檢送好禮")
}

func TestAnalyze_NotMedicalAdSkipsRevision(t *testing.T) {
	mock := llm.NewMockClient()
	mock.GenerateTextFunc = func(context.Context, string) (string, error) {
		return "這段文字不是醫療廣告，無需進行法規分析。", nil
	}

	svc := NewAnalysisService(mock, &retry.Policy{MaxAttempts: 1}, writeLawDoc(t, "corpus"), zap.NewNop())

	result, err := svc.Analyze(context.Background(), "今天天氣真好")
	require.NoError(t, err)

	assert.Equal(t, 1, mock.GenerateTextCalls, "revision phase must not run")
	assert.Equal(t, prompts.FallbackRevision, result.ResultAdvice)
	assert.Contains(t, result.ResultLaw, prompts.NotMedicalAdSentinel)
}

func TestAnalyze_MissingLawDocStillRuns(t *testing.T) {
	mock := llm.NewMockClient()
	mock.GenerateTextFunc = func(context.Context, string) (string, error) {
		return prompts.NotMedicalAdSentinel, nil
	}

	svc := NewAnalysisService(mock, &retry.Policy{MaxAttempts: 1}, filepath.Join(t.TempDir(), "absent.txt"), zap.NewNop())

	_, err := svc.Analyze(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, 1, mock.GenerateTextCalls)
}

func TestAnalyze_GenerationErrorPropagates(t *testing.T) {
	wantErr := errors.New("api unavailable")
	mock := llm.NewMockClient()
	mock.GenerateTextFunc = func(context.Context, string) (string, error) {
		return "", wantErr
	}

	svc := NewAnalysisService(mock, &retry.Policy{MaxAttempts: 1}, writeLawDoc(t, "corpus"), zap.NewNop())

	_, err := svc.Analyze(context.Background(), "text")
	assert.ErrorIs(t, err, wantErr)
}
