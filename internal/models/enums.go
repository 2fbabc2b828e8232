package models

// Language codes accepted for meanings, transliterations,
// interpretations and bhashyams.
type Language string

const (
	LanguageSanskrit Language = "sa"
	LanguageEnglish  Language = "en"
	LanguageKannada  Language = "kn"
	LanguageTamil    Language = "ta"
	LanguageTelugu   Language = "te"
	LanguageHindi    Language = "hi"
)

func (l Language) Valid() bool {
	switch l {
	case LanguageSanskrit, LanguageEnglish, LanguageKannada,
		LanguageTamil, LanguageTelugu, LanguageHindi:
		return true
	}
	return false
}

// Philosophy is the interpretive school an interpretation belongs to.
type Philosophy string

const (
	PhilosophyAdvaita         Philosophy = "adv"
	PhilosophyVishishtadvaita Philosophy = "vis"
	PhilosophyDvaita          Philosophy = "dva"
)

func (p Philosophy) Valid() bool {
	switch p {
	case PhilosophyAdvaita, PhilosophyVishishtadvaita, PhilosophyDvaita:
		return true
	}
	return false
}

// Mode is the audio rendering variant.
type Mode string

const (
	ModeChant     Mode = "chant"
	ModeTeachMe   Mode = "teach_me"
	ModeLearnMore Mode = "learn_more"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeChant, ModeTeachMe, ModeLearnMore:
		return true
	}
	return false
}
