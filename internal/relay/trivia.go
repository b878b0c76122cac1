package relay

import "math/rand"

var triviaQuestions = []string{
	"What is the name of Link's horse? (Epona)",
	"Which Timeline does Breath of the Wild take place in? (It's complicated...)",
	"What is the currency of Hyrule? (Rupees)",
	"Who is the Goron Champion? (Daruk)",
	"How many Korok seeds are in BOTW? (900)",
	"Which village is Impa located in? (Kakariko)",
	"What is the name of the Zora princess? (Mipha)",
	"Which champion pilots the Divine Beast Vah Medoh? (Revali)",
	"Who is the leader of the Gerudo? (Riju)",
	"What is the main function of Purah in Hyrule? (Research & Ancient Technology)",
	"Which character is known for playing the accordion? (Kass)",
	"Who is the loyal companion of Link that can talk? (Navi – optional BOTW references)",
	"Which Divine Beast is associated with Daruk? (Vah Rudania)",
	"Who teaches Link ancient techniques in the game? (Robbie)",
	"Which Korok seeds are needed to upgrade all armor? (900 – full set)",
}

// Package-level vars so tests can pin the draws.
var (
	rollDie = func() int { return rand.Intn(20) + 1 }

	flipCoin = func() string {
		if rand.Intn(2) == 0 {
			return "Heads"
		}
		return "Tails"
	}

	pickTrivia = func() string {
		return triviaQuestions[rand.Intn(len(triviaQuestions))]
	}
)
