package studygen

import (
	"math/rand"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/hrygo/studybuddy/internal/errors"
)

const (
	// MinQuizInputLength is the minimum trimmed text length for quiz generation.
	MinQuizInputLength = 100
	// MaxQuizQuestions caps quiz output regardless of strategy.
	MaxQuizQuestions = 5
	// BlankMarker replaces the key word in a fill-in-the-blank stem.
	BlankMarker = "____"
)

// genericQuestion is the guaranteed-minimum comprehension question appended
// when sentence-based generation comes up short.
var genericQuestion = QuizQuestion{
	Question:     "What is the main topic of this text?",
	Options:      []string{"Topic A", "Topic B", "Topic C", "Topic D"},
	CorrectIndex: 0,
}

// placeholderOptions pad the distractor set when the text does not carry
// enough unique significant words.
var placeholderOptions = []string{"Option B", "Option C", "Option D"}

// QuizBuilderConfig configures the deterministic fallback quiz generator.
type QuizBuilderConfig struct {
	// MaxQuestions caps generated questions; defaults to MaxQuizQuestions.
	MaxQuestions int
	// Seed seeds the option shuffle. Zero means a time-based seed.
	Seed int64
}

// QuizBuilder generates fill-in-the-blank quizzes from raw text without any
// remote call. The input text is never mutated.
type QuizBuilder struct {
	segmenter    *Segmenter
	rng          *rand.Rand
	maxQuestions int
}

// NewQuizBuilder creates a new QuizBuilder.
func NewQuizBuilder(config *QuizBuilderConfig) *QuizBuilder {
	if config == nil {
		config = &QuizBuilderConfig{}
	}
	maxQuestions := config.MaxQuestions
	if maxQuestions <= 0 || maxQuestions > MaxQuizQuestions {
		maxQuestions = MaxQuizQuestions
	}
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &QuizBuilder{
		segmenter:    NewSegmenter(nil),
		rng:          rand.New(rand.NewSource(seed)),
		maxQuestions: maxQuestions,
	}
}

// Build generates 1 to MaxQuestions scored questions from text. Each question
// blanks out one significant key word of a sentence; the other three options
// are unique distractor words sampled from the rest of the text. Key words are
// de-duplicated case-insensitively across questions. A generic comprehension
// question is appended when fewer than 3 questions were produced.
func (b *QuizBuilder) Build(text string) ([]QuizQuestion, error) {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < MinQuizInputLength {
		return nil, errors.InputTooShort("text too short for quiz generation")
	}

	sentences := b.segmenter.Sentences(text)
	if len(sentences) > b.maxQuestions {
		sentences = sentences[:b.maxQuestions]
	}

	pool := b.segmenter.SignificantWords(text)
	usedKeys := make(map[string]struct{})

	var questions []QuizQuestion
	for _, sentence := range sentences {
		if len(questions) >= b.maxQuestions {
			break
		}

		key := pickKeyWord(b.segmenter.SignificantWords(sentence), usedKeys)
		if key == "" {
			continue
		}
		usedKeys[strings.ToLower(key)] = struct{}{}

		stem := strings.ReplaceAll(sentence, key, BlankMarker) + "?"
		options, correctIndex := b.shuffleOptions(key, b.sampleDistractors(pool, key))
		questions = append(questions, QuizQuestion{
			Question:     stem,
			Options:      options,
			CorrectIndex: correctIndex,
		})
	}

	if len(questions) < 3 {
		questions = append(questions, genericQuestion)
	}
	if len(questions) > b.maxQuestions {
		questions = questions[:b.maxQuestions]
	}

	for i := range questions {
		questions[i].ID = i + 1
	}
	return questions, nil
}

// pickKeyWord returns the first significant word not yet used as a key in
// this quiz, or "" when the sentence has none left.
func pickKeyWord(words []string, used map[string]struct{}) string {
	for _, w := range words {
		if _, ok := used[strings.ToLower(w)]; !ok {
			return w
		}
	}
	return ""
}

// sampleDistractors picks 3 unique title-cased words from the full-text pool,
// excluding the key word, padding with placeholders when the pool is small.
func (b *QuizBuilder) sampleDistractors(pool []string, key string) []string {
	keyLower := strings.ToLower(key)
	var candidates []string
	for _, w := range pool {
		if strings.ToLower(w) != keyLower {
			candidates = append(candidates, titleCase(w))
		}
	}

	distractors := make([]string, 0, 3)
	for _, i := range b.rng.Perm(len(candidates)) {
		if len(distractors) == 3 {
			break
		}
		distractors = append(distractors, candidates[i])
	}
	for i := 0; len(distractors) < 3; i++ {
		distractors = append(distractors, placeholderOptions[i])
	}
	return distractors
}

// shuffleOptions applies a uniform random permutation to the key word plus
// its distractors and reports where the key word landed.
func (b *QuizBuilder) shuffleOptions(key string, distractors []string) ([]string, int) {
	ordered := append([]string{key}, distractors...)
	shuffled := make([]string, len(ordered))
	correctIndex := 0
	for src, dst := range b.rng.Perm(len(ordered)) {
		shuffled[dst] = ordered[src]
		if src == 0 {
			correctIndex = dst
		}
	}
	return shuffled, correctIndex
}

// titleCase uppercases the first rune and lowercases the rest.
func titleCase(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
