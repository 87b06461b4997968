// Package services holds the business logic between HTTP handlers and the
// repositories / generation client.
package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/madetect-tw/madetect-engine/pkg/lawdoc"
	"github.com/madetect-tw/madetect-engine/pkg/llm"
	"github.com/madetect-tw/madetect-engine/pkg/prompts"
	"github.com/madetect-tw/madetect-engine/pkg/retry"
	"github.com/madetect-tw/madetect-engine/pkg/textutil"
)

// AnalysisResult holds both pipeline outputs for one ad submission.
type AnalysisResult struct {
	// ResultLaw is the normalized, list-formatted legality verdict.
	ResultLaw string
	// ResultLawHTML is ResultLaw rendered as HTML list fragments.
	ResultLawHTML string
	// ResultAdvice is the revision suggestion, or the fixed fallback when
	// the input was not a medical ad.
	ResultAdvice string
}

// AnalysisService runs the two-phase detection pipeline.
type AnalysisService interface {
	Analyze(ctx context.Context, adText string) (*AnalysisResult, error)
}

type analysisService struct {
	client  llm.Client
	policy  *retry.Policy
	lawPath string
	logger  *zap.Logger
}

// NewAnalysisService creates the detection pipeline. The law corpus is
// re-read per analysis so edits to the document take effect without a
// restart.
func NewAnalysisService(client llm.Client, policy *retry.Policy, lawPath string, logger *zap.Logger) AnalysisService {
	return &analysisService{
		client:  client,
		policy:  policy,
		lawPath: lawPath,
		logger:  logger.Named("analysis"),
	}
}

// Analyze runs the legal-analysis phase and, unless the analysis says the
// input is not a medical advertisement, the revision phase. The two calls
// are sequential and blocking; under quota pressure a single analysis can
// take tens of seconds. Generation errors propagate uncaught to the
// caller.
func (s *analysisService) Analyze(ctx context.Context, adText string) (*AnalysisResult, error) {
	lawText := lawdoc.Load(s.lawPath, s.logger)

	rawAnalysis, err := s.policy.Generate(ctx, s.client, prompts.BuildLegalAnalysis(lawText, adText))
	if err != nil {
		return nil, err
	}

	// Sentinel matching happens on the raw model output: the list
	// formatter may truncate the line carrying it.
	formatted := textutil.FormatList(textutil.CleanMarkdown(rawAnalysis))
	result := &AnalysisResult{
		ResultLaw:     formatted,
		ResultLawHTML: textutil.FormatListHTML(formatted),
	}

	if strings.Contains(rawAnalysis, prompts.NotMedicalAdSentinel) {
		s.logger.Info("input is not a medical ad, skipping revision phase")
		result.ResultAdvice = prompts.FallbackRevision
		return result, nil
	}

	rawAdvice, err := s.policy.Generate(ctx, s.client, prompts.BuildRevision(rawAnalysis, adText))
	if err != nil {
		return nil, err
	}
	result.ResultAdvice = textutil.CleanMarkdown(rawAdvice)

	return result, nil
}
