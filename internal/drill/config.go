package drill

import "time"

// Answer modes supported by the drill runner.
const (
	ModeCorrect = "correct" // answer every form with the canonical value
	ModeWrong   = "wrong"   // answer every form with a deliberately wrong value
	ModeMixed   = "mixed"   // answer roughly half the forms correctly
)

// Config holds configuration for a drill run.
type Config struct {
	BaseURL    string        // Base URL of the service
	VerbsFile  string        // Corpus file used as the answer key
	Count      int           // Verbs requested per session
	Rounds     int           // Number of start/submit rounds
	Mode       string        // Answer mode: correct, wrong or mixed
	Timeout    time.Duration // HTTP request timeout
	LogFile    string        // Log file for drill output
	Verbose    bool          // Enable verbose logging
}

// verbInfo mirrors one offered quiz slot from the start response.
type verbInfo struct {
	Infinitive   string   `json:"infinitive"`
	Index        int      `json:"index"`
	Translations []string `json:"translations"`
	Example      string   `json:"example"`
}

// startResponse mirrors the session start payload.
type startResponse struct {
	SessionID  string     `json:"session_id"`
	Verbs      []verbInfo `json:"verbs"`
	TotalVerbs int        `json:"total_verbs"`
}

// answerPayload mirrors one submitted verb.
type answerPayload struct {
	Infinitive  string `json:"infinitive"`
	Praesens    string `json:"praesens"`
	Praeteritum string `json:"praeteritum"`
	Perfekt     string `json:"perfekt"`
}

// submitRequest mirrors the submission payload.
type submitRequest struct {
	SessionID string          `json:"session_id"`
	Answers   []answerPayload `json:"answers"`
}

// verbResult mirrors the per-verb breakdown in the report.
type verbResult struct {
	Infinitive     string            `json:"infinitive"`
	Correct        map[string]bool   `json:"correct"`
	UserAnswers    map[string]string `json:"user_answers"`
	CorrectAnswers map[string]string `json:"correct_answers"`
	AllCorrect     bool              `json:"all_correct"`
}

// submitResponse mirrors the graded session report.
type submitResponse struct {
	SessionID       string       `json:"session_id"`
	TotalVerbs      int          `json:"total_verbs"`
	TotalForms      int          `json:"total_forms"`
	CorrectCount    int          `json:"correct_count"`
	ScorePercentage int          `json:"score_percentage"`
	Results         []verbResult `json:"results"`
}

// healthResponse mirrors the health payload.
type healthResponse struct {
	Status      string `json:"status"`
	VerbsLoaded int    `json:"verbs_loaded"`
}

// Stats holds drill statistics accumulated across rounds.
type Stats struct {
	RoundsRun       int
	RoundsVerified  int
	RoundsFailed    int
	VerbsOffered    int
	FormsGraded     int
	FormsCorrect    int
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
}
