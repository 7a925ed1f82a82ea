package components

import (
	"math/rand/v2"
	"time"
)

// QuotePeriod is how often the header quote rotates.
const QuotePeriod = 30 * time.Second

var quotes = []string{
	"The secret of getting ahead is getting started. - Mark Twain",
	"It always seems impossible until it's done. - Nelson Mandela",
	"Don't watch the clock; do what it does. Keep going. - Sam Levenson",
	"The best way to predict your future is to create it. - Abraham Lincoln",
	"Success is not final, failure is not fatal: It is the courage to continue that counts. - Winston Churchill",
	"The only way to do great work is to love what you do. - Steve Jobs",
	"You don't have to be great to start, but you have to start to be great. - Zig Ziglar",
	"Start where you are. Use what you have. Do what you can. - Arthur Ashe",
	"The expert in anything was once a beginner. - Helen Hayes",
	"Today is your opportunity to build the tomorrow you want. - Ken Poirot",
}

// Quote returns a random motivational quote. pick defaults to rand.IntN.
func Quote(pick func(n int) int) string {
	if pick == nil {
		pick = rand.IntN
	}
	i := pick(len(quotes))
	if i < 0 || i >= len(quotes) {
		i = 0
	}
	return quotes[i]
}
