package domain

// ReferralNode is one node of the derived sponsorship tree. The tree is an
// ephemeral view: it is rebuilt from scratch on every query and never
// persisted. Children holds direct recruits in the insertion order of the
// underlying user collection and is omitted when empty.
type ReferralNode struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Level    int             `json:"level"`
	Role     Role            `json:"role"`
	Sales    float64         `json:"sales"`
	Children []*ReferralNode `json:"children,omitempty"`
}
