package voting

type VoteRequest struct {
	ContentID string `json:"content_id" binding:"required"`
	Vote      string `json:"vote" binding:"required,oneof=up down"`
}

type VoteResponse struct {
	ContentID string `json:"content_id"`
	Vote      string `json:"vote"`
}
