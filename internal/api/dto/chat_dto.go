package dto

// AskRequest payload for the question endpoint.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse carries the normalized answer text.
type AskResponse struct {
	Answer string `json:"answer"`
}
