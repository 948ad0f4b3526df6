package model

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type VersionResponse struct {
	Version string `json:"version"`
	Status  string `json:"status"`
}

type UserListResponse struct {
	Users []UserProfile `json:"users"`
}

type PostListResponse struct {
	Posts []Post `json:"posts"`
}

type TagListResponse struct {
	Tags []Tag `json:"tags"`
}
