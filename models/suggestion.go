package models

// Suggestion is a proposed remedy tied to one issue.
type Suggestion struct {
	ID           string `bson:"_id" json:"id" yaml:"id"`
	IssueID      string `bson:"issueId" json:"issueId" yaml:"issueId"`
	Title        string `bson:"title" json:"title" yaml:"title"`
	Description  string `bson:"description" json:"description" yaml:"description"`
	UserID       string `bson:"userId" json:"userId" yaml:"userId"`
	UserName     string `bson:"userName" json:"userName" yaml:"userName"`
	Votes        int    `bson:"votes" json:"votes" yaml:"votes"`
	CreatedAt    string `bson:"createdAt" json:"createdAt" yaml:"createdAt"`
	UserHasVoted bool   `bson:"-" json:"userHasVoted" yaml:"userHasVoted"`
}
