package state

type AppState int

const (
	AppMainMenu AppState = iota
	AppAudioMenu
	AppCreditsMenu
	AppCutscene
	AppInGame
)

func (s AppState) String() string {
	switch s {
	case AppMainMenu:
		return "MainMenu"
	case AppAudioMenu:
		return "AudioMenu"
	case AppCreditsMenu:
		return "CreditsMenu"
	case AppCutscene:
		return "Cutscene"
	case AppInGame:
		return "InGame"
	default:
		return "AppState(?)"
	}
}

type TransitionState int

const (
	TransitionIdle TransitionState = iota
	TransitionStarted
	TransitionFinished
)

func (s TransitionState) String() string {
	switch s {
	case TransitionIdle:
		return "Idle"
	case TransitionStarted:
		return "Started"
	case TransitionFinished:
		return "Finished"
	default:
		return "TransitionState(?)"
	}
}

type FadeState int

const (
	FadeNone FadeState = iota
	FadeIn
	FadeInFinished
	FadeOut
)

func (s FadeState) String() string {
	switch s {
	case FadeNone:
		return "None"
	case FadeIn:
		return "FadeIn"
	case FadeInFinished:
		return "FadeInFinished"
	case FadeOut:
		return "FadeOut"
	default:
		return "FadeState(?)"
	}
}

type BGMState int

const (
	BGMChanged BGMState = iota
	BGMChanging
)

func (s BGMState) String() string {
	if s == BGMChanging {
		return "Changing"
	}
	return "Changed"
}

type InteractionState int

const (
	InteractionNotReady InteractionState = iota
	InteractionReady
)

func (s InteractionState) String() string {
	if s == InteractionReady {
		return "Ready"
	}
	return "NotReady"
}

type ConversationState int

const (
	ConversationFinished ConversationState = iota
	ConversationStarted
)

func (s ConversationState) String() string {
	if s == ConversationStarted {
		return "Started"
	}
	return "Finished"
}
