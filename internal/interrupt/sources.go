package interrupt

// Источники состояния клавиши остановки
const (
	SourcePoll = "poll"
	SourceHook = "hook"
)
