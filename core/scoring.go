package core

// Scores computes both sides' surplus for a finished match.
//
// Without a deal both sides score exactly 0.0: walking away is treated as
// strictly better than a bad deal, so it must never be scored negative.
// With a deal at price p the score is the signed fraction by which the
// agreed price beats the side's own private estimate.
func Scores(deal bool, price, sellerEstimate, buyerEstimate float64) (sellerScore, buyerScore float64) {
	if !deal {
		return 0.0, 0.0
	}
	sellerScore = (price - sellerEstimate) / sellerEstimate
	buyerScore = (buyerEstimate - price) / buyerEstimate
	return sellerScore, buyerScore
}
