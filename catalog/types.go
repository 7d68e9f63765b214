package catalog

import "time"

// Center is a practice center users attribute their runs to.
type Center struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

type Language struct {
	ID   int64
	Name string
}

type Level struct {
	ID   int64
	Name string
}

type Duration struct {
	ID      int64
	Seconds int
}

// Text is one typing exercise, keyed by language and level.
type Text struct {
	ID         int64
	LanguageID int64
	LevelID    *int64
	Title      string
	Content    string
}
