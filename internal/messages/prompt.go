package messages

// Prompt messages for the installer/driver conversation.
const (
	PromptAbandoned          = "prompt abandoned"
	PromptAlreadyAnswered    = "question already answered"
	PromptQuestionInFlight   = "another question is still waiting for an answer"
	PromptStreamClosed       = "installer closed the conversation before DONE"
	PromptChoiceInvalidFmt   = "invalid choice %q: want overwrite, rename, or cancel"
	PromptUnknownKindFmt     = "unknown question kind %v"
	PromptWrongAnswerKindFmt = "expected %s answer for %v question"
)
