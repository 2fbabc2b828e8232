package models

// Project is a named scripture collection acting as the root of the
// content hierarchy. Deleting a project removes all of its sutras and
// their children.
type Project struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"` // unique
	Description string `json:"description,omitempty"`
	Img         string `json:"img,omitempty"`
}

// Sutra is an atomic verse addressed by (project, chapter, number).
type Sutra struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"project_id"`
	Chapter   int    `json:"chapter"`
	Number    int    `json:"number"`
	Text      string `json:"text"`
}

// SutraRef is the lightweight projection returned by list endpoints.
type SutraRef struct {
	ID      int64 `json:"id"`
	Chapter int   `json:"chapter"`
	Number  int   `json:"number"`
}

// TextChild is a language-keyed rendering of a sutra. Meanings,
// transliterations and bhashyams all share this shape; the kind picks
// the table.
type TextChild struct {
	ID       int64    `json:"id"`
	SutraID  int64    `json:"sutra_id"`
	Language Language `json:"language"`
	Text     string   `json:"text"`
}

// Interpretation is a commentary keyed by (language, philosophy school).
type Interpretation struct {
	ID         int64      `json:"id"`
	SutraID    int64      `json:"sutra_id"`
	Language   Language   `json:"language"`
	Philosophy Philosophy `json:"philosophy"`
	Text       string     `json:"text"`
}

// Audio is a recording of a sutra in a given rendering mode. At most
// one file exists per (sutra, mode).
type Audio struct {
	ID       int64  `json:"id"`
	SutraID  int64  `json:"sutra_id"`
	Mode     Mode   `json:"mode"`
	FilePath string `json:"file_path"`
}

// SearchResult is one hit of the substring search. Lang is nil for hits
// in the sutra text itself.
type SearchResult struct {
	Text    string    `json:"text"`
	SutraNo int       `json:"sutra_no"`
	Mode    string    `json:"mode"`
	Lang    *Language `json:"lang"`
}
