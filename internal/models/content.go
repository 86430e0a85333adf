package models

import "time"

// Translation holds one language's rendering of a content item.
// Supported languages are Arabic, English and Turkish.
type Translation struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Summary string `json:"summary,omitempty"`
}

type Translations struct {
	Ar Translation `json:"ar"`
	En Translation `json:"en"`
	Tr Translation `json:"tr"`
}

type News struct {
	ID           string
	Title        string
	Slug         string
	Content      string
	Summary      *string
	CoverImage   *string
	AuthorID     string
	AuthorName   string
	Category     *string
	Tags         []string
	IsPublished  bool
	IsFeatured   bool
	Views        int64
	PublishedAt  *time.Time
	Translations Translations
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type FAQ struct {
	ID           string
	Question     string
	Answer       string
	Category     *string
	Position     int
	IsPublished  bool
	Translations Translations
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ContactStatus string

const (
	ContactStatusNew      ContactStatus = "new"
	ContactStatusRead     ContactStatus = "read"
	ContactStatusArchived ContactStatus = "archived"
)

type Contact struct {
	ID        string
	Name      string
	Email     string
	Subject   string
	Message   string
	Status    ContactStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Media struct {
	ID          string
	UploaderID  string
	Bucket      string
	ObjectKey   string
	FileName    string
	ContentType string
	SizeBytes   int64
	CreatedAt   time.Time
}
