package core

import "time"

// Role identifies which side of the table an agent sits on.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// Other returns the counterpart role.
func (r Role) Other() Role {
	if r == RoleBuyer {
		return RoleSeller
	}
	return RoleBuyer
}

// Speaker tags a transcript entry relative to the agent that owns the transcript.
type Speaker string

const (
	SpeakerSelf  Speaker = "self"
	SpeakerOther Speaker = "other"
)

// Message is one entry in an agent's conversation transcript.
type Message struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// StructuredReply is the normalized output of one agent turn.
// Thought is private rationale and is never shown to the counterpart.
// Offer is nil when no price is on the table from this speaker.
type StructuredReply struct {
	Thought string   `json:"thought"`
	Message string   `json:"message"`
	Offer   *float64 `json:"offer"`
	Deal    bool     `json:"deal"`
}

// Scenario describes the item under negotiation. TrueValue is hidden from
// both agents; Variance bounds how far each private estimate may drift.
type Scenario struct {
	Item      string  `json:"item"`
	TrueValue float64 `json:"trueValue"`
	Variance  float64 `json:"variance"`
}

// TurnRecord is one line of a match log. Note carries a system rejection
// message when the engine downgraded an invalid deal claim on this turn.
type TurnRecord struct {
	Turn  int             `json:"turn"`
	Agent string          `json:"agent"`
	Model string          `json:"model"`
	Role  Role            `json:"role"`
	Reply StructuredReply `json:"reply"`
	Note  string          `json:"note,omitempty"`
}

// AgentReport summarizes one side's participation in a finished match.
type AgentReport struct {
	Name         string  `json:"name"`
	Model        string  `json:"model"`
	Role         Role    `json:"role"`
	Estimate     float64 `json:"estimate"`
	Score        float64 `json:"score"`
	OutputTokens int     `json:"outputTokens"`
}

// MatchResult is the immutable record of one completed negotiation,
// written exactly once when the match reaches a terminal state.
type MatchResult struct {
	RunID        string       `json:"runId"`
	TournamentID string       `json:"tournamentId,omitempty"`
	Timestamp    time.Time    `json:"timestamp"`
	Scenario     Scenario     `json:"scenario"`
	Seller       AgentReport  `json:"seller"`
	Buyer        AgentReport  `json:"buyer"`
	Deal         bool         `json:"deal"`
	Price        float64      `json:"price,omitempty"`
	Turns        int          `json:"turns"`
	Log          []TurnRecord `json:"log"`
}

// ManifestEntry is a denormalized summary of a MatchResult, kept in a
// newest-first index so the dashboard can list runs without loading logs.
type ManifestEntry struct {
	RunID        string    `json:"runId"`
	TournamentID string    `json:"tournamentId,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	Item         string    `json:"item"`
	SellerName   string    `json:"sellerName"`
	SellerModel  string    `json:"sellerModel"`
	BuyerName    string    `json:"buyerName"`
	BuyerModel   string    `json:"buyerModel"`
	Deal         bool      `json:"deal"`
	Price        float64   `json:"price,omitempty"`
	SellerScore  float64   `json:"sellerScore"`
	BuyerScore   float64   `json:"buyerScore"`
	Turns        int       `json:"turns"`
}

// ManifestEntryFor derives the index summary from a full result.
func ManifestEntryFor(res *MatchResult) ManifestEntry {
	return ManifestEntry{
		RunID:        res.RunID,
		TournamentID: res.TournamentID,
		Timestamp:    res.Timestamp,
		Item:         res.Scenario.Item,
		SellerName:   res.Seller.Name,
		SellerModel:  res.Seller.Model,
		BuyerName:    res.Buyer.Name,
		BuyerModel:   res.Buyer.Model,
		Deal:         res.Deal,
		Price:        res.Price,
		SellerScore:  res.Seller.Score,
		BuyerScore:   res.Buyer.Score,
		Turns:        res.Turns,
	}
}
