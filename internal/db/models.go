package db

type IndexRunRow struct {
	ID            string
	ContentDir    string
	DocumentCount int
	CreatedAt     string
}

type DocumentRow struct {
	Slug        string
	Path        string
	Title       string
	Draft       bool
	ContentHash string
	RunID       string
	IndexedAt   string
}
