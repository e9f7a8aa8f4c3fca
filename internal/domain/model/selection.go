package model

// OfferedVerb is one quiz slot handed to the client: the infinitive plus
// hint data, never the canonical forms being quizzed.
type OfferedVerb struct {
	Infinitive   string
	Index        int
	Translations []string
	Example      string
}

// QuizSelection is the outcome of sampling for one session. It lives only
// in the start-session response; the server keeps no copy. The session ID
// is a pure correlation token for the client, never validated on submit.
type QuizSelection struct {
	SessionID string
	Verbs     []OfferedVerb
}
