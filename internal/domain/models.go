package domain

// Outcome is a match result normalized from the raw sheet token.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeWin
	OutcomeLoss
)

// outcomeTokens maps every recognized result spelling to its outcome.
// Tokens absent from the table stay OutcomeUnknown, which scores as a
// neutral 0.5 and never touches win/loss counters.
var outcomeTokens = map[string]Outcome{
	"勝":  OutcomeWin,
	"勝利": OutcomeWin,
	"〇":  OutcomeWin,
	"負":  OutcomeLoss,
	"敗北": OutcomeLoss,
	"✕":  OutcomeLoss,
}

// ParseOutcome classifies a raw result token.
func ParseOutcome(token string) Outcome {
	return outcomeTokens[token]
}

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	default:
		return "unknown"
	}
}

// Opposite returns the outcome the other participant must have declared
// for the pair to be consistent.
func (o Outcome) Opposite() Outcome {
	switch o {
	case OutcomeWin:
		return OutcomeLoss
	case OutcomeLoss:
		return OutcomeWin
	default:
		return OutcomeUnknown
	}
}

// MatchRow is one participant's line in the match workbook. Each match
// appears twice, once per player. Complete is false when any source cell
// was blank (placeholder rows for matches that were never played).
type MatchRow struct {
	MatchNumber int
	Player      string
	Opponent    string
	Result      string // raw token, e.g. 勝 / 負
	Cards       int    // cards captured, 0-20
	Complete    bool
}

// PlayerRating is the current standing of one player.
type PlayerRating struct {
	Player string
	Rating float64
	Wins   int
	Losses int
}

// HistoryEntry is the immutable audit record of one applied rating update.
// ID is assigned at persist time (nanoid) and is empty while in memory.
type HistoryEntry struct {
	ID            string
	MatchNumber   int
	PlayerA       string
	PlayerB       string
	ResultA       string // raw token as recorded for player A
	CardsA        int
	CardsB        int
	ExpectedA     float64
	ActualA       float64
	RatingABefore float64
	RatingBBefore float64
	RatingAAfter  float64
	RatingBAfter  float64
	ChangeA       float64
	ChangeB       float64
}

// RejectReason identifies why a pair was skipped during processing.
type RejectReason string

const (
	RejectMissingOpponentData RejectReason = "missing_opponent_data"
	RejectOpponentMismatch    RejectReason = "opponent_mismatch"
	RejectResultContradiction RejectReason = "result_contradiction"
)

// Rejection records one skipped pair. Rejections never abort a run.
type Rejection struct {
	MatchNumber int
	Player      string
	Opponent    string
	Reason      RejectReason
}
