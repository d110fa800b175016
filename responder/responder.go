// Package responder picks the assistant's canned reply for a chat message.
package responder

import "strings"

// Greeting opens every chat session.
const Greeting = "Hi! 👋 I am Civiconnect Assistant. How can I help you today? You can ask me about reporting issues, exploring the app, or any other question!"

const helpSummary = "You can ask me about reporting issues, exploring, signing up, logging in, or anything else about Civiconnect!"

// Fallback is returned when no rule matches.
const Fallback = "Sorry, I didn’t understand that. " + helpSummary

// Rule binds a reply to a set of trigger substrings. Triggers are lower case.
type Rule struct {
	Name     string
	Triggers []string
	Reply    string
}

// Rules is tested in order; the first rule with a matching trigger wins.
// The rules overlap, so reordering them changes replies.
var Rules = []Rule{
	{
		Name:     "report",
		Triggers: []string{"report", "issue"},
		Reply:    `To report an issue, click the "Report an Issue" button on the homepage or use the "+" icon in the navigation. Fill in the details and submit!`,
	},
	{
		Name:     "explore",
		Triggers: []string{"explore", "browse"},
		Reply:    `To explore issues, click on the "Explore" tab in the navigation. You can filter and view all reported issues there.`,
	},
	{
		Name:     "login",
		Triggers: []string{"login", "sign in"},
		Reply:    `To log in, click the "Login" button in the top right or in the navigation menu. Enter your credentials to access your account.`,
	},
	{
		Name:     "signup",
		Triggers: []string{"signup", "register", "sign up"},
		Reply:    `To sign up, click the "Sign Up" button in the top right or in the navigation menu. Fill in your details to create an account.`,
	},
	{
		Name:     "profile",
		Triggers: []string{"profile"},
		Reply:    `To view or edit your profile, click on the "Profile" tab in the navigation.`,
	},
	{
		Name:     "suggestion",
		Triggers: []string{"suggestion"},
		Reply:    `To view or submit suggestions, use the "Suggestions" tab in the navigation.`,
	},
	{
		Name:     "help",
		Triggers: []string{"help", "guide"},
		Reply:    helpSummary,
	},
	{
		Name:     "contact",
		Triggers: []string{"contact", "support"},
		Reply:    "For further support, please use the contact form on our website or email support@civiconnect.com.",
	},
	{
		Name:     "dark-mode",
		Triggers: []string{"dark mode"},
		Reply:    "Dark mode is coming soon! Stay tuned for updates.",
	},
	{
		Name:     "logout",
		Triggers: []string{"logout"},
		Reply:    `To log out, go to your profile and click the "Logout" button.`,
	},
	{
		Name:     "thanks",
		Triggers: []string{"thank"},
		Reply:    "You’re welcome! 😊 If you have more questions, just ask.",
	},
}

// Match returns the first rule triggered by message.
func Match(message string) (Rule, bool) {
	text := strings.ToLower(message)
	for _, rule := range Rules {
		for _, trigger := range rule.Triggers {
			if strings.Contains(text, trigger) {
				return rule, true
			}
		}
	}
	return Rule{}, false
}

// Respond returns the reply for message, or Fallback.
func Respond(message string) string {
	rule, ok := Match(message)
	if !ok {
		recordMatch("fallback")
		return Fallback
	}
	recordMatch(rule.Name)
	return rule.Reply
}
