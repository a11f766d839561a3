package tui

// verdictRecordedMsg reports the outcome of journaling a verdict.
type verdictRecordedMsg struct {
	err           error
	transactionID string
}
