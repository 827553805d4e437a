package studygen

import "strings"

// FallbackSummaryPrefix marks a summary produced without the remote model.
const FallbackSummaryPrefix = "[Quick Summary] "

// localSummarySentenceMin is the lowered sentence threshold used for the
// local summary, so that short notes still yield something usable.
const localSummarySentenceMin = 10

// localSummarySentences is how many leading sentences the local summary keeps.
const localSummarySentences = 3

// LocalSummary builds a deterministic no-network summary: the first three
// sentences of the text joined with ". ", prefixed with a marker identifying
// it as a non-AI fallback.
func LocalSummary(text string) string {
	seg := NewSegmenter(&SegmenterConfig{MinSentenceLength: localSummarySentenceMin})
	sentences := seg.Sentences(text)
	if len(sentences) == 0 {
		return FallbackSummaryPrefix + strings.TrimSpace(text)
	}
	if len(sentences) > localSummarySentences {
		sentences = sentences[:localSummarySentences]
	}
	return FallbackSummaryPrefix + strings.Join(sentences, ". ")
}
