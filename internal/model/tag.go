package model

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type PostSummary struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// TagDetail is a tag together with the posts carrying it.
type TagDetail struct {
	ID    int64         `json:"id"`
	Name  string        `json:"name"`
	Posts []PostSummary `json:"posts"`
}
