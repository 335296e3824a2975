package chat

import "fmt"

var greetings = []string{
	"Hello! I'm your movie recommendation assistant. Tell me a movie you like, and I'll find similar ones for you! 🎬",
	"Hey there! Ready to discover your next favorite movie? Just tell me a film you enjoyed. ✨",
	"Hi! I'm here to help you find great movies. Share a title you love, and let's explore! 🚀",
}

var recommendationIntros = []string{
	"Based on your interest in \"%s\", I've found some fantastic recommendations for you!",
	"Great choice! If you enjoyed \"%s\", I think you'll love these similar films:",
	"Analyzing \"%s\"... Here are some movies I think match your taste:",
}

// Explanations take the title and the score as a whole percentage.
var recommendationExplanations = []string{
	"I recommend \"%s\" because it shares similar themes and storytelling style. Similarity: %s",
	"\"%s\" is a great match! It has comparable narrative elements. Match: %s",
	"You might enjoy \"%s\" - it explores similar concepts. Compatibility: %s",
}

var notFoundReplies = []string{
	"Hmm, I couldn't find \"%s\" in my database. Could you try a different movie title?",
	"I don't have \"%s\" in my collection yet. Try searching for another film!",
	"Sorry, \"%s\" isn't in my database. Please suggest a different movie title.",
}

var generalErrors = []string{
	"Oops! Something went wrong. Let me try again...",
	"I encountered an issue. Could you rephrase your request?",
	"Hmm, I'm having trouble with that. Let's try something else!",
}

const askForTitle = "I'd love to help! Could you tell me a movie title you'd like recommendations for?"

func percent(score float64) string {
	return fmt.Sprintf("%.0f%%", score*100)
}
