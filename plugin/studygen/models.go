package studygen

// QuizQuestion is one scored multiple-choice question. Options always holds
// exactly 4 unique entries and CorrectIndex indexes the designated answer.
type QuizQuestion struct {
	ID           int      `json:"id"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

// Flashcard is one question/answer pair. Cards are generated fresh per
// session and never persisted independently of the source note.
type Flashcard struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
