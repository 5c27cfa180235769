package events

var typeToName = map[EventType]string{
	EventQuestionGenerated: "QuestionGenerated",
	EventCookieDropped:     "CookieDropped",
	EventAnswerSubmitted:   "AnswerSubmitted",
	EventScoreUpdated:      "ScoreUpdated",
	EventLivesUpdated:      "LivesUpdated",
	EventLivesDepleted:     "LivesDepleted",
	EventTimerUpdated:      "TimerUpdated",
	EventTimerExpired:      "TimerExpired",
	EventQuestionAdvanced:  "QuestionAdvanced",
	EventGameOver:          "GameOver",
	EventSoundRequest:      "SoundRequest",
}

var nameToType = func() map[string]EventType {
	m := make(map[string]EventType, len(typeToName))
	for et, name := range typeToName {
		m[name] = et
	}
	return m
}()

// Name returns the string name for an EventType, used in log lines
func (et EventType) Name() string {
	if name, ok := typeToName[et]; ok {
		return name
	}
	return "Unknown"
}

// TypeByName returns the EventType for a given name
func TypeByName(name string) (EventType, bool) {
	et, ok := nameToType[name]
	return et, ok
}
